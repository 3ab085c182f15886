package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/exporters"
)

// ExportController streams table contents as CSV, JSON or a SQL dump.
type ExportController struct {
	conn database.Connection
}

func NewExportController(conn database.Connection) *ExportController {
	return &ExportController{conn: conn}
}

func (controller *ExportController) tableFor(c *gin.Context, name string) (*exporters.Table, bool) {
	ctx := c.Request.Context()
	known, err := controller.conn.Tables(ctx)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
		return nil, false
	}
	found := false
	for _, t := range known {
		if t == name {
			found = true
			break
		}
	}
	if !found {
		respondBadRequest(c, "unknown table: "+name)
		return nil, false
	}

	rows, err := controller.conn.Select(ctx, database.Query{Table: name, OrderBy: "created_at"})
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
		return nil, false
	}

	raw := make([]map[string]any, len(rows))
	for i, r := range rows {
		raw[i] = r
	}
	return &exporters.Table{Name: name, Columns: exporters.ColumnsOf(raw), Rows: raw}, true
}

// CSV exports one table as a CSV attachment.
func (controller *ExportController) CSV(c *gin.Context) {
	name := c.Param("table")
	table, ok := controller.tableFor(c, name)
	if !ok {
		return
	}
	out, err := exporters.CSV(*table)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
	c.Data(http.StatusOK, "text/csv", []byte(out))
}

// JSON exports one table as a JSON attachment.
func (controller *ExportController) JSON(c *gin.Context) {
	name := c.Param("table")
	table, ok := controller.tableFor(c, name)
	if !ok {
		return
	}
	out, err := exporters.JSON(*table)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", name))
	c.Data(http.StatusOK, "application/json", []byte(out))
}

// SQL exports every table as one INSERT-statement dump.
func (controller *ExportController) SQL(c *gin.Context) {
	ctx := c.Request.Context()
	known, err := controller.conn.Tables(ctx)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, database.Result[any]{Success: false, Error: err.Error()})
		return
	}

	dump := make([]exporters.Table, 0, len(known))
	for _, name := range known {
		table, ok := controller.tableFor(c, name)
		if !ok {
			return
		}
		dump = append(dump, *table)
	}

	out := exporters.SQLDump(dump, time.Now())
	c.Header("Content-Disposition", "attachment; filename=hostpanel-dump.sql")
	c.Data(http.StatusOK, "application/sql", []byte(out))
}
