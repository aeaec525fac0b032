package postgres

import "database/sql"

const stateTable = "account_state"

// PgState is one row of account_state.
type PgState struct {
	Account   string       `db:"account"`
	Key       string       `db:"key"`
	Value     string       `db:"value"`
	Origin    string       `db:"origin"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func newPgState(account, key string, value []byte, origin string) PgState {
	return PgState{
		Account: account,
		Key:     key,
		Value:   string(value),
		Origin:  origin,
	}
}
