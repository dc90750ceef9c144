// Package classify maps raw account records to canonical types and
// keyword-inferred semantic roles. The explicit account type, when it
// is one of the five canonical values, is authoritative for type
// totals; roles are derived independently from free text because
// upstream registries do not reliably tag cash/bank/AR/AP accounts.
package classify

import (
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Classifier applies an ordered rule list to account and line text.
// The rule list is a plain value so alternative heuristics can be
// swapped in without touching the aggregation math.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier with the given rules.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Default returns a Classifier using DefaultRules.
func Default() *Classifier {
	return NewClassifier(DefaultRules())
}

// Roles returns every role whose keywords match the account name or,
// for description-matching rules, the line description. Matches are
// independent: a line can count toward both expense and bank.
func (c *Classifier) Roles(accountName, lineDescription string) RoleSet {
	name := strings.ToLower(accountName)
	desc := strings.ToLower(lineDescription)

	roles := make(RoleSet)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) || (rule.MatchDescription && desc != "" && strings.Contains(desc, kw)) {
				roles.add(rule.Role)
				break
			}
		}
	}
	return roles
}

// Classification is the result of classifying one account.
type Classification struct {
	// Type is the trusted explicit type, or empty when the registry
	// value is blank or not canonical.
	Type model.AccountType
	// Roles are the keyword-inferred semantic roles from the account
	// name alone.
	Roles RoleSet
}

// Classify resolves an account's trusted type and name-derived roles.
// An account with neither is invisible to all aggregation.
func (c *Classifier) Classify(acct model.Account) Classification {
	cl := Classification{Roles: c.Roles(acct.Name, "")}
	if acct.Type.Valid() {
		cl.Type = acct.Type
	}
	return cl
}

// Index resolves roles and types for journal lines by account ID. It
// is built once per aggregation run and is read-only afterwards, so
// concurrent report builds can share it.
type Index struct {
	classifier *Classifier
	byID       map[int]model.Account
}

// NewIndex builds an Index over the given accounts.
func NewIndex(classifier *Classifier, accts []model.Account) *Index {
	byID := make(map[int]model.Account, len(accts))
	for _, a := range accts {
		byID[a.ID] = a
	}
	return &Index{classifier: classifier, byID: byID}
}

// Roles returns the role set for a line: account-name matches plus
// description matches. Unknown accounts match nothing.
func (ix *Index) Roles(accountID int, lineDescription string) RoleSet {
	acct, ok := ix.byID[accountID]
	if !ok {
		return RoleSet{}
	}
	return ix.classifier.Roles(acct.Name, lineDescription)
}

// Type returns the trusted explicit type for an account, if any.
func (ix *Index) Type(accountID int) (model.AccountType, bool) {
	acct, ok := ix.byID[accountID]
	if !ok || !acct.Type.Valid() {
		return "", false
	}
	return acct.Type, true
}
