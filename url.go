package cppdbc

import (
	"strconv"
	"strings"
)

// ParsedURL is the result of splitting a cpp_dbc:<scheme>://… connection
// string into its parts, per the grammar in spec.md §6.
type ParsedURL struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     string
	Database string
	Options  map[string]string
}

const urlPrefix = "cpp_dbc:"

// ParseURL splits a cpp_dbc connection string into scheme/host/port/
// database/options. It never consults the driver registry: "no scheme
// understood the result" is the registry's job to report, not this
// function's (spec.md §4.1).
func ParseURL(raw string) (*ParsedURL, error) {
	if !strings.HasPrefix(raw, urlPrefix) {
		return nil, NewError(CodeInvalidURL, "url %q does not start with %q", raw, urlPrefix)
	}
	rest := raw[len(urlPrefix):]

	schemeEnd := strings.Index(rest, "://")
	if schemeEnd < 0 {
		return nil, NewError(CodeInvalidURL, "url %q missing scheme separator \"://\"", raw)
	}
	scheme := rest[:schemeEnd]
	if scheme == "" {
		return nil, NewError(CodeInvalidURL, "url %q has empty scheme", raw)
	}
	rest = rest[schemeEnd+3:]

	// Split off the query string first: everything after the first "?" that
	// is not part of the SQLite filesystem path rule below. The query is
	// always the suffix, so finding the first "?" from the left is correct
	// for every scheme including sqlite (a sqlite path may legally contain
	// ":" and "/" but conventionally not "?").
	var query string
	if idx := strings.Index(rest, "?"); idx >= 0 {
		query = rest[idx+1:]
		rest = rest[:idx]
	}

	authorityAndDB := rest
	var authority, database string
	if scheme == "sqlite" {
		// database is a filesystem path, taken verbatim from the rest of
		// the string: it may itself contain "/" (absolute paths) and even
		// further "//" (cpp_dbc:sqlite:///abs/path.db leaves database as
		// "/abs/path.db"). There is no network authority to parse.
		database = authorityAndDB
		authority = ""
	} else {
		if idx := strings.Index(authorityAndDB, "/"); idx >= 0 {
			authority = authorityAndDB[:idx]
			database = authorityAndDB[idx+1:]
		} else {
			authority = authorityAndDB
		}
	}

	p := &ParsedURL{Scheme: scheme, Database: database, Options: map[string]string{}}

	if authority != "" {
		userinfo := ""
		hostport := authority
		if idx := strings.Index(authority, "@"); idx >= 0 {
			userinfo = authority[:idx]
			hostport = authority[idx+1:]
		}
		if userinfo != "" {
			if idx := strings.Index(userinfo, ":"); idx >= 0 {
				p.User = userinfo[:idx]
				p.Password = userinfo[idx+1:]
			} else {
				p.User = userinfo
			}
		}
		if idx := strings.LastIndex(hostport, ":"); idx >= 0 {
			p.Host = hostport[:idx]
			p.Port = hostport[idx+1:]
			if _, err := strconv.Atoi(p.Port); err != nil {
				return nil, NewError(CodeInvalidURL, "url %q has non-numeric port %q", raw, p.Port)
			}
		} else {
			p.Host = hostport
		}
	}

	if query != "" {
		for _, kv := range strings.Split(query, "&") {
			if kv == "" {
				continue
			}
			if idx := strings.Index(kv, "="); idx >= 0 {
				p.Options[kv[:idx]] = kv[idx+1:]
			} else {
				p.Options[kv] = ""
			}
		}
	}

	return p, nil
}

// DefaultPort returns the well-known default port for a scheme, or ""
// for schemes with no network default (sqlite).
func DefaultPort(scheme string) string {
	switch scheme {
	case "mysql":
		return "3306"
	case "postgresql":
		return "5432"
	case "mongodb":
		return "27017"
	case "redis":
		return "6379"
	case "firebird":
		return "3050"
	case "scylladb":
		return "9042"
	default:
		return ""
	}
}

// PortOrDefault returns p.Port, falling back to DefaultPort(p.Scheme) when
// the URL omitted it (spec.md §4.1 edge case: missing port).
func (p *ParsedURL) PortOrDefault() string {
	if p.Port != "" {
		return p.Port
	}
	return DefaultPort(p.Scheme)
}
