package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestReadAccounts(t *testing.T) {
	input := `account_id,code,account_name,account_type,balance,description
1020,1020,Business Checking,asset,2500.00,Primary bank account
4010,4010,Service Revenue,revenue,,
9000,9000,Mystery Account,,100.00,no type from upstream
`
	accts, err := ReadAccounts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accts, 3)

	assert.Equal(t, 1020, accts[0].ID)
	assert.Equal(t, model.AccountTypeAsset, accts[0].Type)
	assert.True(t, accts[0].Balance.Equal(decimal.NewFromInt(2500)))

	assert.Equal(t, model.AccountTypeRevenue, accts[1].Type)
	assert.True(t, accts[1].Balance.IsZero())

	// Blank type survives the read; classification decides what to do.
	assert.Equal(t, model.AccountType(""), accts[2].Type)
}

func TestReadAccounts_Empty(t *testing.T) {
	accts, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, accts)
}

func TestReadAccounts_BadID(t *testing.T) {
	input := `account_id,code,account_name,account_type,balance,description
abc,1020,Business Checking,asset,,
`
	_, err := ReadAccounts(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteReadRoundTrip(t *testing.T) {
	accts := []model.Account{
		{ID: 1010, Code: "1010", Name: "Petty Cash", Type: model.AccountTypeAsset, Balance: decimal.NewFromInt(300)},
		{ID: 5040, Code: "5040", Name: "Rent", Type: model.AccountTypeExpense, Description: "Office rent"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, accts[0].Name, got[0].Name)
	assert.True(t, got[0].Balance.Equal(accts[0].Balance))
	assert.Equal(t, accts[1].Description, got[1].Description)
}
