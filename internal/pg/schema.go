package pg

import (
	"fmt"
	"sort"
	"strings"
)

// Column описывает колонку таблицы для генерации DDL.
type Column struct {
	Name    string
	Type    string            // serial, string, int, bool, datetime
	Options map[string]string // required, unique, default, primary
}

// Table — таблица в схеме Schema (пустая схема = search_path).
type Table struct {
	Schema  string
	Name    string // имя сущности в единственном числе
	Columns []Column
}

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

// элементарная плюрализация (restaurant -> restaurants)
func plural(s string) string {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}

// TableName — имя таблицы для сущности, с защитой keyword'ов.
func TableName(entity string) string {
	t := plural(entity)
	if isReserved(t) {
		t = "e_" + t
	}
	return t
}

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

func qualified(t Table) string {
	if t.Schema == "" {
		return sqlIdent(TableName(t.Name))
	}
	return sqlIdent(t.Schema) + "." + sqlIdent(TableName(t.Name))
}

func mapType(c Column) (string, error) {
	switch strings.ToLower(c.Type) {
	case "serial":
		return "bigserial", nil
	case "string":
		return "text", nil
	case "int":
		return "bigint", nil
	case "bool":
		return "boolean", nil
	case "datetime":
		return "timestamp with time zone", nil
	default:
		return "", fmt.Errorf("unknown type: %s", c.Type)
	}
}

func hasOpt(c Column, k string) bool {
	if c.Options == nil {
		return false
	}
	_, ok := c.Options[k]
	return ok
}

// RestaurantTable — схема таблицы ресторанов.
func RestaurantTable() Table {
	notNull := map[string]string{"required": "true", "default": ""}
	return Table{
		Name: "restaurant",
		Columns: []Column{
			{Name: "id", Type: "serial", Options: map[string]string{"primary": "true"}},
			{Name: "name", Type: "string", Options: notNull},
			{Name: "address", Type: "string", Options: notNull},
			{Name: "city", Type: "string", Options: notNull},
			{Name: "description", Type: "string", Options: notNull},
		},
	}
}

// GenerateDDL возвращает карту ключ -> SQL DDL. Ключи задают порядок применения в ApplyDDL.
func GenerateDDL(tables []Table) (map[string]string, error) {
	out := make(map[string]string, len(tables)+1)

	sorted := append([]Table(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var schemas strings.Builder
	seenSchemas := map[string]struct{}{}

	for _, t := range sorted {
		if t.Schema != "" {
			if _, ok := seenSchemas[t.Schema]; !ok {
				fmt.Fprintf(&schemas, "create schema if not exists %s;\n", sqlIdent(t.Schema))
				seenSchemas[t.Schema] = struct{}{}
			}
		}

		var sb strings.Builder
		var cols []string
		seen := map[string]struct{}{}
		for _, c := range t.Columns {
			nameLower := strings.ToLower(c.Name)
			if _, dup := seen[nameLower]; dup {
				return nil, fmt.Errorf("%s: duplicate column %q", t.Name, c.Name)
			}
			seen[nameLower] = struct{}{}

			typ, err := mapType(c)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name, c.Name, err)
			}
			if hasOpt(c, "primary") {
				cols = append(cols, fmt.Sprintf("%s %s primary key", sqlIdent(c.Name), typ))
				continue
			}
			null := "null"
			if hasOpt(c, "required") {
				null = "not null"
			}
			def := ""
			if dv, ok := c.Options["default"]; ok {
				def = fmt.Sprintf(" default '%s'", strings.ReplaceAll(dv, "'", "''"))
			}
			cols = append(cols, fmt.Sprintf("%s %s %s%s", sqlIdent(c.Name), typ, null, def))
		}
		fmt.Fprintf(&sb, "create table if not exists %s (\n  %s\n);\n",
			qualified(t), strings.Join(cols, ",\n  "))

		for _, c := range t.Columns {
			if hasOpt(c, "unique") {
				fmt.Fprintf(&sb, "create unique index if not exists %s_%s_uq on %s(%s);\n",
					strings.ToLower(t.Name), strings.ToLower(c.Name), qualified(t), sqlIdent(c.Name))
			}
		}
		out["100_"+TableName(t.Name)] = sb.String()
	}
	if schemas.Len() > 0 {
		out["000_schemas"] = schemas.String()
	}
	return out, nil
}
