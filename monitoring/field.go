package monitoring

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/syifan/goseth"
)

type fieldReq struct {
	RunID     string `json:"run_id,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

// listFieldValue serializes one field of a run, such as "Steps.3.Frames".
func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		badRequest(w, err)
		return
	}

	result := m.findRunOr404(w, req.RunID)
	if result == nil {
		return
	}

	var fields []string
	if req.FieldName != "" {
		fields = strings.Split(req.FieldName, ".")

		_, err = m.walkFields(result, req.FieldName)
		if err != nil {
			badRequest(w, err)
			return
		}
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(result)
	serializer.SetMaxDepth(1)

	if len(fields) > 0 {
		err = serializer.SetEntryPoint(fields)
		if err != nil {
			badRequest(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	err = serializer.Serialize(w)
	dieOnErr(err)
}

type fieldFormatError struct {
	field  string
	reason string
}

func (e fieldFormatError) Error() string {
	return fmt.Sprintf("field %s: %s", e.field, e.reason)
}

// walkFields follows a dot-separated path of struct fields and slice indexes.
func (m *Monitor) walkFields(
	root any,
	fields string,
) (reflect.Value, error) {
	elem := reflect.ValueOf(root)

	fieldNames := strings.Split(fields, ".")

	for len(fieldNames) > 0 {
		name := fieldNames[0]

		switch elem.Kind() {
		case reflect.Ptr, reflect.Interface:
			if elem.IsNil() {
				return elem, fieldFormatError{name, "nil value"}
			}

			elem = elem.Elem()

			continue
		case reflect.Struct:
			elem = elem.FieldByName(name)
			if !elem.IsValid() {
				return elem, fieldFormatError{name, "no such field"}
			}
		case reflect.Slice:
			index, err := strconv.Atoi(name)
			if err != nil {
				return elem, fieldFormatError{name, "not an index"}
			}

			if index < 0 || index >= elem.Len() {
				return elem, fieldFormatError{name, "index out of range"}
			}

			elem = elem.Index(index)
		default:
			return elem, fieldFormatError{name,
				fmt.Sprintf("cannot descend into %s", elem.Kind())}
		}

		fieldNames = fieldNames[1:]
	}

	if elem.Kind() == reflect.Ptr && !elem.IsNil() {
		elem = elem.Elem()
	}

	return elem, nil
}
