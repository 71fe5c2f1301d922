// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package idnengine

import (
	"context"
	"fmt"
	"strings"

	gms "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/sql"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/idn/libraries/idn/encbridge"
	"github.com/dolthub/idn/libraries/idn/idnconv"
	"github.com/dolthub/idn/libraries/sqle/idnfunctions"
)

const (
	// DatabaseName is the database every session starts in.
	DatabaseName = "idn"
	// ConstantsTableName holds one row per flag constant the functions accept.
	ConstantsTableName = "idn_constants"
)

// SqlEngine runs queries against an in-memory database with the IDN functions registered.
type SqlEngine struct {
	engine *gms.Engine
	pro    *memory.DbProvider
	conv   *idnconv.Converter
	logger *logrus.Logger
}

// NewSqlEngine returns a SqlEngine whose functions are bound to |conv|.
func NewSqlEngine(ctx context.Context, conv *idnconv.Converter, logger *logrus.Logger) (*SqlEngine, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	db := memory.NewDatabase(DatabaseName)
	pro := memory.NewDBProvider(db)
	se := &SqlEngine{
		engine: gms.NewDefault(pro),
		pro:    pro,
		conv:   conv.WithLogger(logger),
		logger: logger,
	}

	if enc := se.conv.Encoding(); !enc.Equals(encbridge.UTF8) {
		logger.WithField("encoding", enc.Name()).Debug("function arguments are converted from UTF-8 to the database encoding")
	}

	sqlCtx := se.NewContext(ctx)
	se.engine.Analyzer.Catalog.RegisterFunction(sqlCtx, idnfunctions.Functions(se.conv)...)

	if err := se.createConstantsTable(sqlCtx); err != nil {
		return nil, err
	}
	return se, nil
}

// NewContext converts a context.Context to a sql.Context with a fresh session.
func (se *SqlEngine) NewContext(ctx context.Context) *sql.Context {
	sess := memory.NewSession(sql.NewBaseSession(), se.pro)
	sqlCtx := sql.NewContext(ctx, sql.WithSession(sess))
	sqlCtx.SetCurrentDatabase(DatabaseName)
	return sqlCtx
}

func (se *SqlEngine) createConstantsTable(ctx *sql.Context) error {
	create := fmt.Sprintf("CREATE TABLE %s (name VARCHAR(64) PRIMARY KEY, value BIGINT NOT NULL, description TEXT NOT NULL)", ConstantsTableName)
	if err := se.exec(ctx, create); err != nil {
		return err
	}

	rows := se.conv.Constants()
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (name, value, description) VALUES ", ConstantsTableName)
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%s, %d, %s)", quote(r.Name), r.Value, quote(r.Description))
	}
	return se.exec(ctx, sb.String())
}

func (se *SqlEngine) exec(ctx *sql.Context, query string) error {
	_, iter, _, err := se.engine.Query(ctx, query)
	if err != nil {
		return err
	}
	_, err = sql.RowIterToRows(ctx, iter)
	return err
}

// Query executes |query| and returns the column names of its result along with every row.
func (se *SqlEngine) Query(ctx *sql.Context, query string) ([]string, []sql.Row, error) {
	se.logger.WithField("query", query).Debug("executing query")

	sch, iter, _, err := se.engine.Query(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	rows, err := sql.RowIterToRows(ctx, iter)
	if err != nil {
		return nil, nil, err
	}

	cols := make([]string, len(sch))
	for i, col := range sch {
		cols[i] = col.Name
	}
	return cols, rows, nil
}

// Warnings returns the warnings raised by the last statement run on |ctx|.
func (se *SqlEngine) Warnings(ctx *sql.Context) []*sql.Warning {
	return ctx.Session.Warnings()
}

// Close releases the engine.
func (se *SqlEngine) Close() error {
	return se.engine.Close()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
