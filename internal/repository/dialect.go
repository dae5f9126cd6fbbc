package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// OracleDriverName is the database/sql name registered by go-ora.
const OracleDriverName = "oracle"

func init() {
	// sqlx only knows godror/oci8 as Oracle drivers; go-ora binds :name placeholders too.
	sqlx.BindDriver(OracleDriverName, sqlx.NAMED)
}

func isOracle(exec DBTX) bool {
	return exec.DriverName() == OracleDriverName
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern that matches term literally
// anywhere in the text. Queries using it must declare ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
