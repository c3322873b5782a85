package utils

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"txdash/internal/models"
)

// DisplayReport prints the summary panel and the account ranking to
// the terminal before the dashboard server starts.
func DisplayReport(report *models.Report, displayAccounts int) {
	if report.Global.TotalTransactions == 0 {
		fmt.Println("No transactions to display.")
		return
	}

	fmt.Println("Transaction Analytics:")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Total", "Success Rate", "Avg Fee", "First Slot", "Last Slot", "Slots"})
	t.AppendRow(table.Row{
		report.Global.TotalTransactions,
		fmt.Sprintf("%.2f%%", report.Global.SuccessRate()),
		fmt.Sprintf("%.0f", report.Global.AvgFee),
		report.Global.FirstSlot,
		report.Global.LastSlot,
		report.Global.TotalSlots,
	})
	t.Render()

	if len(report.Accounts) == 0 {
		return
	}
	if displayAccounts <= 0 || displayAccounts > len(report.Accounts) {
		displayAccounts = len(report.Accounts)
	}

	fmt.Println("Most Active Accounts:")
	a := table.NewWriter()
	a.SetOutputMirror(os.Stdout)
	a.AppendHeader(table.Row{"Account", "Occurrences", "Successful", "Slots"})
	for _, acc := range report.Accounts[:displayAccounts] {
		a.AppendRow(table.Row{
			acc.Account,
			acc.TransactionCount,
			acc.SuccessfulTransactions,
			acc.SlotsParticipated,
		})
	}
	a.Render()
}
