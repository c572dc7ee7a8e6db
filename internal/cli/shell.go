// Package cli implements the interactive text menu. It is presentation glue:
// every choice gathers validated input, calls one service operation and
// prints the result. Recoverable errors redisplay the current menu; storage
// failures abort the session.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"bankbuddy/internal/domain"
	apperrors "bankbuddy/internal/errors"
	"bankbuddy/internal/service"
)

// errInputClosed signals end of input (Ctrl-D); the session ends cleanly.
var errInputClosed = errors.New("input closed")

type Shell struct {
	accounts     *service.AccountService
	transactions *service.TransactionService
	in           *bufio.Scanner
	out          io.Writer
	logger       *slog.Logger
}

func New(accounts *service.AccountService, transactions *service.TransactionService, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	return &Shell{
		accounts:     accounts,
		transactions: transactions,
		in:           bufio.NewScanner(in),
		out:          out,
		logger:       logger,
	}
}

// Run drives the main menu until the operator exits or a storage failure
// makes the session unsafe to continue.
func (s *Shell) Run() error {
	s.logger.Info("Interactive session started")
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, strings.Repeat("=", 40))
		fmt.Fprintf(s.out, "||%s||\n", center("BANK BUDDY", 36))
		fmt.Fprintln(s.out, strings.Repeat("=", 40))
		fmt.Fprintln(s.out, "|| 1. Manage Accounts              ||")
		fmt.Fprintln(s.out, "|| 2. Make Transactions            ||")
		fmt.Fprintln(s.out, "|| 3. View Transaction History     ||")
		fmt.Fprintln(s.out, "|| 4. Exit                         ||")
		fmt.Fprintln(s.out, strings.Repeat("=", 40))

		choice, err := s.readLine("Enter your choice (1-4): ")
		if err != nil {
			return sessionErr(err)
		}

		switch choice {
		case "1":
			err = s.manageAccounts()
		case "2":
			err = s.makeTransaction()
		case "3":
			err = s.transactionHistory()
		case "4":
			fmt.Fprintln(s.out, "Thank you for using Bank Buddy! Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}

		if err != nil {
			return sessionErr(err)
		}
	}
}

func (s *Shell) manageAccounts() error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, strings.Repeat("-", 40))
		fmt.Fprintf(s.out, "|%s|\n", center("ACCOUNT MANAGEMENT", 38))
		fmt.Fprintln(s.out, strings.Repeat("-", 40))
		fmt.Fprintln(s.out, "| 1. View All Accounts             |")
		fmt.Fprintln(s.out, "| 2. Create New Account            |")
		fmt.Fprintln(s.out, "| 3. Edit Account Name             |")
		fmt.Fprintln(s.out, "| 4. Back to Main Menu             |")
		fmt.Fprintln(s.out, strings.Repeat("-", 40))

		choice, err := s.readLine("Enter your choice (1-4): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.viewAccounts()
		case "2":
			err = s.createAccount()
		case "3":
			err = s.editAccountName()
		case "4":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}

		if err != nil {
			return err
		}
	}
}

func (s *Shell) viewAccounts() error {
	accounts, err := s.accounts.ListAccounts()
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nID | Name | Balance")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	for _, account := range accounts {
		fmt.Fprintf(s.out, "%d | %s | %s\n", account.ID, account.Name, formatAmount(account.Balance))
	}
	return nil
}

func (s *Shell) createAccount() error {
	name, err := s.readLine("Enter account name: ")
	if err != nil {
		return err
	}

	initialBalance := decimal.Zero
	balanceInput, err := s.readLine("Enter initial balance (default 0.00): ")
	if err != nil {
		return err
	}

	if balanceInput != "" {
		parsed, err := decimal.NewFromString(balanceInput)
		switch {
		case err != nil:
			fmt.Fprintln(s.out, "Invalid amount. Using default 0.00")
		case parsed.IsNegative():
			fmt.Fprintln(s.out, "Initial balance cannot be negative. Using 0.00")
		default:
			initialBalance = parsed
		}
	}

	account, err := s.accounts.CreateAccount(name, initialBalance)
	if err != nil {
		return s.reportError(err)
	}

	fmt.Fprintf(s.out, "Account created successfully with ID: %d\n", account.ID)
	return nil
}

func (s *Shell) editAccountName() error {
	account, err := s.promptAccount("Enter account ID to edit: ")
	if err != nil || account == nil {
		return err
	}

	fmt.Fprintf(s.out, "Current name: %s\n", account.Name)
	newName, err := s.readLine("Enter new name: ")
	if err != nil {
		return err
	}

	if err := s.accounts.RenameAccount(account.ID, newName); err != nil {
		if apperrors.IsStorageFailure(err) {
			return err
		}
		fmt.Fprintf(s.out, "No account found with ID: %d\n", account.ID)
		return nil
	}

	fmt.Fprintln(s.out, "Account updated successfully!")
	return nil
}

func (s *Shell) makeTransaction() error {
	accounts, err := s.accounts.ListAccounts()
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts found. Please create an account first.")
		return nil
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintf(s.out, "|%s|\n", center("MAKE TRANSACTION", 38))
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintln(s.out, "Available accounts:")
	fmt.Fprintln(s.out, "ID | Name | Balance")
	fmt.Fprintln(s.out, strings.Repeat("-", 30))
	for _, account := range accounts {
		fmt.Fprintf(s.out, "%d | %s | %s\n", account.ID, account.Name, formatAmount(account.Balance))
	}

	account, err := s.promptAccount("\nEnter account ID: ")
	if err != nil || account == nil {
		return err
	}

	fmt.Fprintf(s.out, "\nSelected: %s (Balance: %s)\n", account.Name, formatAmount(account.Balance))
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintln(s.out, "| 1. Deposit                      |")
	fmt.Fprintln(s.out, "| 2. Withdraw                     |")
	fmt.Fprintln(s.out, strings.Repeat("-", 40))

	choice, err := s.readLine("Enter choice (1-2): ")
	if err != nil {
		return err
	}
	if choice != "1" && choice != "2" {
		fmt.Fprintln(s.out, "Invalid choice.")
		return nil
	}

	amountInput, err := s.readLine("Enter amount: $")
	if err != nil {
		return err
	}

	amount, err := decimal.NewFromString(amountInput)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid amount. Please enter a valid number.")
		return nil
	}
	if !amount.IsPositive() {
		fmt.Fprintln(s.out, "Amount must be positive.")
		return nil
	}

	if choice == "1" {
		if _, err := s.transactions.Deposit(account.ID, amount); err != nil {
			return s.reportError(err)
		}
		fmt.Fprintf(s.out, "Successfully deposited %s\n", formatAmount(amount))
		return nil
	}

	// Screen against the balance shown at selection time; the service
	// re-checks inside the database transaction.
	if amount.GreaterThan(account.Balance) {
		fmt.Fprintln(s.out, "Insufficient funds.")
		return nil
	}

	if _, err := s.transactions.Withdraw(account.ID, amount); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			fmt.Fprintln(s.out, "Insufficient funds.")
			return nil
		}
		return s.reportError(err)
	}
	fmt.Fprintf(s.out, "Successfully withdrew %s\n", formatAmount(amount))
	return nil
}

func (s *Shell) transactionHistory() error {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintf(s.out, "|%s|\n", center("TRANSACTION HISTORY", 38))
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	fmt.Fprintln(s.out, "| 1. View All Transactions          |")
	fmt.Fprintln(s.out, "| 2. View Account Transactions      |")
	fmt.Fprintln(s.out, strings.Repeat("-", 40))

	choice, err := s.readLine("Enter choice (1-2): ")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return s.viewAllTransactions()
	case "2":
		return s.viewAccountTransactions()
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
		return nil
	}
}

func (s *Shell) viewAllTransactions() error {
	entries, err := s.transactions.AllTransactions()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No transactions found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nID | Account | Type | Amount | Date")
	fmt.Fprintln(s.out, strings.Repeat("-", 60))
	for _, entry := range entries {
		fmt.Fprintf(s.out, "%d | %s | %s | %s | %s\n",
			entry.ID,
			entry.AccountName,
			entry.Type,
			formatAmount(entry.Amount.Abs()),
			entry.CreatedAt.Format(timestampLayout))
	}
	return nil
}

func (s *Shell) viewAccountTransactions() error {
	account, err := s.promptAccount("Enter account ID: ")
	if err != nil || account == nil {
		return err
	}

	transactions, err := s.transactions.AccountTransactions(account.ID)
	if err != nil {
		return err
	}

	if len(transactions) == 0 {
		fmt.Fprintf(s.out, "No transactions found for account: %s\n", account.Name)
		return nil
	}

	fmt.Fprintf(s.out, "\nTransactions for: %s\n", account.Name)
	fmt.Fprintln(s.out, "ID | Type | Amount | Date")
	fmt.Fprintln(s.out, strings.Repeat("-", 50))
	for _, tx := range transactions {
		fmt.Fprintf(s.out, "%d | %s | %s | %s\n",
			tx.ID,
			tx.Type,
			formatAmount(tx.Amount.Abs()),
			tx.CreatedAt.Format(timestampLayout))
	}
	return nil
}

// promptAccount asks for an account id and resolves it. A nil account with a
// nil error means the operator's input was rejected and already reported.
func (s *Shell) promptAccount(prompt string) (*domain.Account, error) {
	input, err := s.readLine(prompt)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid account ID. Please enter a number.")
		return nil, nil
	}

	account, err := s.accounts.GetAccount(id)
	if err != nil {
		if apperrors.IsStorageFailure(err) {
			return nil, err
		}
		fmt.Fprintf(s.out, "No account found with ID: %d\n", id)
		return nil, nil
	}
	return account, nil
}

// reportError prints a recoverable error to the operator and swallows it;
// storage failures come back unchanged so the session aborts.
func (s *Shell) reportError(err error) error {
	if apperrors.IsStorageFailure(err) {
		return err
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintln(s.out, appErr.Message)
	}
	return nil
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// sessionErr maps end-of-input to a clean exit; anything else aborts.
func sessionErr(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
