/*
codes.go - Account code validation

The chart of accounts encodes type in the code: the leading digit 1..5
maps to asset, liability, equity, revenue, expense. Child codes must
textually extend their parent's code. Type is still stored on the
record; a disagreement between stored type and implied type is a
data-integrity error to report, never to silently correct.
*/
package ledger

import (
	"fmt"
	"regexp"
)

// codePattern: leading type digit followed by up to 15 alphanumerics.
var codePattern = regexp.MustCompile(`^[1-5][0-9A-Za-z]{0,15}$`)

// ImpliedType returns the account type implied by the code's leading
// digit, or false if the code carries no valid type digit.
func ImpliedType(code string) (AccountType, bool) {
	if code == "" {
		return "", false
	}
	switch code[0] {
	case '1':
		return AccountTypeAsset, true
	case '2':
		return AccountTypeLiability, true
	case '3':
		return AccountTypeEquity, true
	case '4':
		return AccountTypeRevenue, true
	case '5':
		return AccountTypeExpense, true
	}
	return "", false
}

// ValidateCode checks the code's format.
func ValidateCode(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("invalid account code %q: %w", code, ErrCodeTypeMismatch)
	}
	return nil
}

// CheckCode validates a code against the stored type and the parent
// account (nil for top-level accounts). It enforces:
//   - code format
//   - stored type matches the type implied by the leading digit
//   - parent shares the same type
//   - child code textually extends the parent code
func CheckCode(code string, typ AccountType, parent *Account) error {
	if err := ValidateCode(code); err != nil {
		return err
	}
	implied, ok := ImpliedType(code)
	if !ok || implied != typ {
		return fmt.Errorf("code %q implies %s, record says %s: %w",
			code, implied, typ, ErrCodeTypeMismatch)
	}
	if parent != nil {
		if parent.Type != typ {
			return fmt.Errorf("parent %q is %s, child is %s: %w",
				parent.Code, parent.Type, typ, ErrCodeTypeMismatch)
		}
		if len(code) <= len(parent.Code) || code[:len(parent.Code)] != parent.Code {
			return fmt.Errorf("code %q does not extend parent code %q: %w",
				code, parent.Code, ErrCodeTypeMismatch)
		}
	}
	return nil
}
