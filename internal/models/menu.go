// Copyright 2026 Asian Cafe
// Licensed under the EUPL-1.2

package models

// MenuItem is a dish on the static menu. Price is in the minor currency
// unit. The menu is owned by an administrative process; this backend only
// reads it.
type MenuItem struct { //nolint:govet // fieldalignment not critical for models
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Price       int64  `db:"price" json:"price"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"desc"`
	Img         string `db:"img" json:"img"`
}
