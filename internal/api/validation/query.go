package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/quantashield/console/internal/api/schema"
)

var (
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]interface{}{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int64) *schema.Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &schema.Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("The query parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]interface{}{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
)

// QueryNumber extracts an optional numeric query parameter, validating its range
func QueryNumber(request *http.Request, name string, def, min, max int64) (int64, *schema.Error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(name, raw, "number")
	}
	if value < min || value > max {
		return 0, errQueryParameterNumberOutOfRange(name, value, min, max)
	}
	return value, nil
}

// QueryBool extracts an optional boolean query parameter
func QueryBool(request *http.Request, name string) (*bool, *schema.Error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errQueryParameterInvalidType(name, raw, "boolean")
	}
	return &value, nil
}

// QueryString extracts an optional string query parameter, returning nil if it is absent
func QueryString(request *http.Request, name string) *string {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}
