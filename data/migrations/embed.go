// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations contains the embedded SQL migrations for the PostgreSQL store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
