package repository

import "errors"

// ErrDuplicate означает нарушение ограничения уникальности при вставке
var ErrDuplicate = errors.New("duplicate record")
