package sql

import (
	"embed"
)

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_report_run.sql
var InsertReportRun string

//go:embed queries/count_report_rows.sql
var CountReportRows string
