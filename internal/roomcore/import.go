package roomcore

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ParseRoomsCSV reads rooms from CSV. With a header row the columns are
// matched by name (name, image, description, location, price); without one
// each row must have exactly those five columns in that order.
func ParseRoomsCSV(rd io.Reader) ([]Fields, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	var out []Fields
	head := rows[0]
	if hasHeader(head) {
		idx := map[string]int{}
		for i, h := range head {
			idx[normalizeKey(h)] = i
		}
		get := func(row []string, keys ...string) string {
			for _, k := range keys {
				if j, ok := idx[k]; ok && j < len(row) {
					return strings.TrimSpace(row[j])
				}
			}
			return ""
		}
		for _, row := range rows[1:] {
			f := Fields{
				Name:        get(row, "name"),
				ImageURL:    get(row, "image", "imageurl"),
				Description: get(row, "description"),
				Location:    get(row, "location"),
				Price:       get(row, "price"),
			}
			if f == (Fields{}) {
				continue
			}
			out = append(out, f)
		}
		return out, nil
	}
	for i, row := range rows {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		if len(row) != 5 {
			return nil, fmt.Errorf("row %d: want 5 columns, got %d", i+1, len(row))
		}
		out = append(out, Fields{
			Name:        strings.TrimSpace(row[0]),
			ImageURL:    strings.TrimSpace(row[1]),
			Description: strings.TrimSpace(row[2]),
			Location:    strings.TrimSpace(row[3]),
			Price:       strings.TrimSpace(row[4]),
		})
	}
	return out, nil
}

// ParseRoomsJSON reads an array of room objects. Price may be a JSON
// string or number.
func ParseRoomsJSON(rd io.Reader) ([]Fields, error) {
	b, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var arr []map[string]any
	if err := dec.Decode(&arr); err != nil {
		return nil, err
	}
	var out []Fields
	for _, m := range arr {
		n := map[string]string{}
		for k, v := range m {
			switch t := v.(type) {
			case string:
				n[normalizeKey(k)] = strings.TrimSpace(t)
			case json.Number:
				n[normalizeKey(k)] = t.String()
			}
		}
		f := Fields{
			Name:        n["name"],
			ImageURL:    firstNonEmpty(n["image"], n["imageurl"]),
			Description: n["description"],
			Location:    n["location"],
			Price:       n["price"],
		}
		if f == (Fields{}) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func hasHeader(row []string) bool {
	for _, h := range row {
		if normalizeKey(h) == "name" {
			return true
		}
	}
	return false
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
