package helper

import (
	"bytes"
	"encoding/json"
)

// ScalarToString приводит JSON-скаляр (строку или число) к строке.
// Для объектов, массивов, bool и null возвращает false.
func ScalarToString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// DecodeArray разбирает JSON-массив на элементы без их интерпретации.
// Для любого другого JSON-значения возвращает false.
func DecodeArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
