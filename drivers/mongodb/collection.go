package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cpp_dbc"
)

// Collection is the MongoDB cppdbc.CollectionHandle: every filter,
// document, and update body crosses this boundary as raw JSON text and is
// decoded into bson.M right here, never earlier (spec.md §9).
type Collection struct {
	conn *Connection
	coll *mongo.Collection
	name string
}

func (c *Collection) Name() string { return c.name }

func decodeFilter(filterJSON string) (bson.M, error) {
	var m bson.M
	if filterJSON == "" {
		return bson.M{}, nil
	}
	if err := bson.UnmarshalExtJSON([]byte(filterJSON), false, &m); err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeParameterError, err, "decoding filter JSON")
	}
	return m, nil
}

func (c *Collection) Find(ctx context.Context, filterJSON string) (cppdbc.DocumentCursor, error) {
	filter, err := decodeFilter(filterJSON)
	if err != nil {
		return nil, err
	}
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "find")
	}
	return &Cursor{cur: cur}, nil
}

func (c *Collection) FindOne(ctx context.Context, filterJSON string) (string, error) {
	filter, err := decodeFilter(filterJSON)
	if err != nil {
		return "", err
	}
	var doc bson.M
	if err := c.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", cppdbc.WrapError(cppdbc.CodeResultExhausted, err, "no matching document")
		}
		return "", cppdbc.WrapError(cppdbc.CodeSqlError, err, "findOne")
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", cppdbc.WrapError(cppdbc.CodeProtocolError, err, "encoding document JSON")
	}
	return string(out), nil
}

func (c *Collection) InsertOne(ctx context.Context, documentJSON string) error {
	var doc bson.M
	if err := bson.UnmarshalExtJSON([]byte(documentJSON), false, &doc); err != nil {
		return cppdbc.WrapError(cppdbc.CodeParameterError, err, "decoding document JSON")
	}
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return cppdbc.WrapError(cppdbc.CodeSqlError, err, "insertOne")
	}
	return nil
}

func (c *Collection) UpdateOne(ctx context.Context, filterJSON, updateJSON string) (int64, error) {
	filter, err := decodeFilter(filterJSON)
	if err != nil {
		return 0, err
	}
	var update bson.M
	if err := bson.UnmarshalExtJSON([]byte(updateJSON), false, &update); err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeParameterError, err, "decoding update JSON")
	}
	res, err := c.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "updateOne")
	}
	return res.ModifiedCount, nil
}

func (c *Collection) DeleteOne(ctx context.Context, filterJSON string) (int64, error) {
	filter, err := decodeFilter(filterJSON)
	if err != nil {
		return 0, err
	}
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "deleteOne")
	}
	return res.DeletedCount, nil
}

// Cursor adapts *mongo.Cursor to cppdbc.DocumentCursor.
type Cursor struct {
	cur *mongo.Cursor
}

func (c *Cursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }

func (c *Cursor) Decode() (string, error) {
	var doc bson.M
	if err := c.cur.Decode(&doc); err != nil {
		return "", cppdbc.WrapError(cppdbc.CodeProtocolError, err, "decoding cursor document")
	}
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", cppdbc.WrapError(cppdbc.CodeProtocolError, err, "encoding document JSON")
	}
	return string(out), nil
}

func (c *Cursor) Close(ctx context.Context) error {
	return c.cur.Close(ctx)
}
