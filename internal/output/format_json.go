package output

import (
	"encoding/json"
)

// JSONFormatter marshals any engine result for machine consumers.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a result value.
func (jf *JSONFormatter) Format(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
