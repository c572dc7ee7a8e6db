package cli

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"bankbuddy/internal/repository"
	"bankbuddy/internal/service"
)

// ShellSuite drives scripted sessions against a real store on a temp file.
type ShellSuite struct {
	suite.Suite
	store        *repository.Store
	accounts     *service.AccountService
	transactions *service.TransactionService
}

func TestShellSuite(t *testing.T) {
	suite.Run(t, new(ShellSuite))
}

func (s *ShellSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := repository.Open(filepath.Join(s.T().TempDir(), "ledger.db"), logger)
	s.Require().NoError(err)
	s.store = store
	s.accounts = service.NewAccountService(store, logger)
	s.transactions = service.NewTransactionService(store, logger)
}

func (s *ShellSuite) TearDownTest() {
	s.store.Close()
}

// run feeds one line of input per menu prompt and returns everything the
// shell printed.
func (s *ShellSuite) run(lines ...string) string {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shell := New(s.accounts, s.transactions, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, logger)
	s.Require().NoError(shell.Run())
	return out.String()
}

func (s *ShellSuite) TestExit() {
	out := s.run("4")
	s.Contains(out, "BANK BUDDY")
	s.Contains(out, "Thank you for using Bank Buddy! Goodbye.")
}

func (s *ShellSuite) TestEndOfInputEndsSession() {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	shell := New(s.accounts, s.transactions, strings.NewReader(""), &out, logger)
	s.NoError(shell.Run())
}

func (s *ShellSuite) TestInvalidChoiceRedisplaysMenu() {
	out := s.run("9", "4")
	s.Contains(out, "Invalid choice. Please try again.")
	s.Equal(2, strings.Count(out, "BANK BUDDY"), "main menu shows again after a bad choice")
}

func (s *ShellSuite) TestCreateAndViewAccount() {
	out := s.run(
		"1", // manage accounts
		"2", // create
		"Alice",
		"100",
		"1", // view all
		"4", // back
		"4", // exit
	)
	s.Contains(out, "Account created successfully with ID: 1")
	s.Contains(out, "1 | Alice | $100.00")
}

func (s *ShellSuite) TestCreateAccountEmptyBalanceDefaultsToZero() {
	out := s.run("1", "2", "Bob", "", "1", "4", "4")
	s.Contains(out, "1 | Bob | $0.00")
}

func (s *ShellSuite) TestCreateAccountNegativeBalanceCoerced() {
	out := s.run("1", "2", "Bob", "-5", "1", "4", "4")
	s.Contains(out, "Initial balance cannot be negative. Using 0.00")
	s.Contains(out, "1 | Bob | $0.00")
}

func (s *ShellSuite) TestCreateAccountNonNumericBalanceCoerced() {
	out := s.run("1", "2", "Bob", "lots", "1", "4", "4")
	s.Contains(out, "Invalid amount. Using default 0.00")
	s.Contains(out, "1 | Bob | $0.00")
}

func (s *ShellSuite) TestViewAccountsEmpty() {
	out := s.run("1", "1", "4", "4")
	s.Contains(out, "No accounts found.")
}

func (s *ShellSuite) TestEditAccountName() {
	out := s.run(
		"1", "2", "Alise", "10", // create with a typo
		"3", "1", "Alice", // fix it
		"1",      // view
		"4", "4", // back, exit
	)
	s.Contains(out, "Current name: Alise")
	s.Contains(out, "Account updated successfully!")
	s.Contains(out, "1 | Alice | $10.00")
}

func (s *ShellSuite) TestEditAccountNameUnknownID() {
	out := s.run("1", "3", "99", "4", "4")
	s.Contains(out, "No account found with ID: 99")
}

func (s *ShellSuite) TestEditAccountNameNonNumericID() {
	out := s.run("1", "3", "first", "4", "4")
	s.Contains(out, "Invalid account ID. Please enter a number.")
}

func (s *ShellSuite) TestMakeTransactionWithoutAccounts() {
	out := s.run("2", "4")
	s.Contains(out, "No accounts found. Please create an account first.")
}

func (s *ShellSuite) TestDeposit() {
	out := s.run(
		"1", "2", "Alice", "100", "4", // create
		"2", "1", "1", "50", // deposit 50 into account 1
		"1", "1", "4", // view balances
		"4",
	)
	s.Contains(out, "Selected: Alice (Balance: $100.00)")
	s.Contains(out, "Successfully deposited $50.00")
	s.Contains(out, "1 | Alice | $150.00")
}

func (s *ShellSuite) TestWithdraw() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "1", "2", "40",
		"1", "1", "4",
		"4",
	)
	s.Contains(out, "Successfully withdrew $40.00")
	s.Contains(out, "1 | Alice | $60.00")
}

func (s *ShellSuite) TestWithdrawInsufficientFunds() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "1", "2", "200",
		"1", "1", "4",
		"4",
	)
	s.Contains(out, "Insufficient funds.")
	s.Contains(out, "1 | Alice | $100.00")
	s.NotContains(out, "Successfully withdrew")
}

func (s *ShellSuite) TestTransactionRejectsNonPositiveAmount() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "1", "1", "-5",
		"4",
	)
	s.Contains(out, "Amount must be positive.")
}

func (s *ShellSuite) TestTransactionRejectsNonNumericAmount() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "1", "1", "ten",
		"4",
	)
	s.Contains(out, "Invalid amount. Please enter a valid number.")
}

func (s *ShellSuite) TestTransactionUnknownAccount() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "99",
		"4",
	)
	s.Contains(out, "No account found with ID: 99")
}

func (s *ShellSuite) TestHistoryAllNewestFirst() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"2", "1", "1", "50",
		"2", "1", "2", "25",
		"3", "1",
		"4",
	)
	s.Contains(out, "ID | Account | Type | Amount | Date")
	withdrawAt := strings.Index(out, "withdraw | $25.00")
	depositAt := strings.Index(out, "deposit | $50.00")
	s.Greater(depositAt, -1)
	s.Greater(withdrawAt, -1)
	s.Less(withdrawAt, depositAt, "most recent transaction prints first")
	s.Contains(out, "Alice")
}

func (s *ShellSuite) TestHistoryEmpty() {
	out := s.run("3", "1", "4")
	s.Contains(out, "No transactions found.")
}

func (s *ShellSuite) TestHistoryForAccount() {
	out := s.run(
		"1", "2", "Alice", "100", "2", "Bob", "50", "4",
		"2", "1", "1", "10",
		"2", "2", "1", "20",
		"3", "2", "1",
		"4",
	)
	s.Contains(out, "Transactions for: Alice")
	s.Contains(out, "deposit | $10.00")
	s.NotContains(out, "$20.00 |") // Bob's deposit stays out of Alice's view
}

func (s *ShellSuite) TestHistoryForAccountWithoutTransactions() {
	out := s.run(
		"1", "2", "Alice", "100", "4",
		"3", "2", "1",
		"4",
	)
	s.Contains(out, "No transactions found for account: Alice")
}

func (s *ShellSuite) TestHistoryInvalidChoice() {
	out := s.run("3", "7", "4")
	s.Contains(out, "Invalid choice.")
}
