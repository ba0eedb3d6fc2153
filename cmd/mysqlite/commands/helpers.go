package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
	"github.com/satishbabariya/mysqlite-go/pkg/client"
	"github.com/satishbabariya/mysqlite-go/query/sqlgen"
)

// parseValue converts a command line value: "null" is NULL, integers and
// floats become numbers and anything else stays a string.
func parseValue(s string) interface{} {
	if strings.EqualFold(s, "null") {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseValues(args []string) []interface{} {
	values := make([]interface{}, len(args))
	for i, a := range args {
		values[i] = parseValue(a)
	}
	return values
}

// parseAssignments turns column=value arguments into ordered values. When
// raw is set the values are kept as strings.
func parseAssignments(args []string, raw bool) (client.Values, error) {
	values := make(client.Values, 0, len(args))
	for _, arg := range args {
		col, val, ok := strings.Cut(arg, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected column=value", arg)
		}
		var v interface{} = val
		if !raw {
			v = parseValue(val)
		}
		values = append(values, sqlgen.Pair{Column: col, Value: v})
	}
	return values, nil
}

// whereFrom builds a predicate from --where assignments or a --where-raw
// text. It returns nil when neither is given.
func whereFrom(pairs []string, raw string) (interface{}, error) {
	if len(pairs) > 0 && raw != "" {
		return nil, fmt.Errorf("--where and --where-raw cannot be combined")
	}
	if raw != "" {
		return raw, nil
	}
	if len(pairs) == 0 {
		return nil, nil
	}
	return parseAssignments(pairs, false)
}

func printResponse(ctx context.Context, resp *client.Response) error {
	headers, records, err := resp.Records(ctx)
	if err != nil {
		return err
	}
	nulls, err := resp.Nulls(ctx)
	if err != nil {
		return err
	}
	return ui.PrintTable(headers, records, nulls)
}
