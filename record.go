package cppdbc

import (
	"github.com/gogf/gf/util/gconv"
)

// Row reads the ResultSet's current row into a map keyed by column name,
// adapted from the teacher's Record.Map (gdb_type_record.go) — cpp_dbc has
// no query-builder Record type of its own, so the convenience is offered
// directly off any ResultSet instead.
func Row(rs ResultSet) (map[string]interface{}, error) {
	names := rs.GetColumnNames()
	out := make(map[string]interface{}, len(names))
	for _, n := range names {
		v, err := rs.IsNull(n)
		if err != nil {
			return nil, err
		}
		if v {
			out[n] = nil
			continue
		}
		s, err := rs.GetString(n)
		if err != nil {
			return nil, err
		}
		out[n] = s
	}
	return out, nil
}

// ScanStruct reads the ResultSet's current row into pointer, a
// *struct/**struct, matching columns to exported fields by name or `db`
// struct tag. Adapted from the teacher's Record.Struct (gdb_type_record.go),
// replacing GoFrame's reflect-based convertMapToStruct with gconv.Struct —
// the same mapping library the teacher's own conversion path bottoms out
// on.
func ScanStruct(rs ResultSet, pointer interface{}) error {
	row, err := Row(rs)
	if err != nil {
		return err
	}
	if err := gconv.Struct(row, pointer); err != nil {
		return WrapError(CodeProtocolError, err, "scanning row into struct")
	}
	return nil
}

// ScanStructs drains every remaining row of rs into pointer, a
// *[]struct/*[]*struct, advancing rs to after-last. Adapted from the
// teacher's Result.Structs (gdb_type_result.go).
func ScanStructs(rs ResultSet, pointer interface{}) error {
	var rows []map[string]interface{}
	for {
		ok, err := rs.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		row, err := Row(rs)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if err := gconv.Structs(rows, pointer); err != nil {
		return WrapError(CodeProtocolError, err, "scanning rows into structs")
	}
	return nil
}
