package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/basket/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An SGML opening tag alone on its line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// OFXReader reads bank and credit card statements. Each account's debits posted on one
// day form a basket whose items are the cleaned payee names.
type OFXReader struct {
	// IncludeCredits also treats deposits and refunds as purchases.
	IncludeCredits bool
}

// NewOFXReader creates a new OFX reader.
func NewOFXReader() *OFXReader {
	return &OFXReader{}
}

var _ Reader = (*OFXReader)(nil)

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Read parses an OFX/QFX file and returns one basket per account and posting day.
func (o *OFXReader) Read(ctx context.Context, r io.Reader) ([]model.Basket, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	groups := newGrouper(model.SourceOFX, "ofx")
	var bankStmts, ccStmts, used int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			used += o.collect(groups, string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			used += o.collect(groups, string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	baskets := groups.result()
	slog.Info("Parsed OFX file",
		"transactions", used,
		"baskets", len(baskets),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	if len(baskets) == 0 {
		return nil, ErrNoBaskets
	}
	return baskets, nil
}

// collect adds a statement's purchases to groups and returns how many were used.
func (o *OFXReader) collect(groups *grouper, accountID string, list *ofxgo.TransactionList) int {
	if list == nil {
		return 0
	}

	used := 0
	for _, tx := range list.Transactions {
		// OFX uses negative amounts for debits
		if tx.TrnAmt.Sign() >= 0 && !o.IncludeCredits {
			continue
		}
		name := extractMerchantName(tx)
		if name == "" {
			continue
		}
		groups.add(accountID, tx.DtPosted.UTC(), name)
		used++
	}
	return used
}

// Prefixes banks put in front of the merchant.
var merchantPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is cleaner than NAME when present
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	for _, prefix := range merchantPrefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " posting date
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
