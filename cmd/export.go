package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [spreadsheet-id]",
	Short: "Export the tracking sheet to an xlsx workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		spreadsheetID, err := resolveSpreadsheetID(args)
		if err != nil {
			return err
		}

		client, err := initSheetsClient(ctx, spreadsheetID)
		if err != nil {
			return err
		}

		rows, err := client.Get(ctx, "A:C")
		if err != nil {
			return eris.Wrap(err, "read sheet")
		}

		f := xlsx.NewFile()
		sheet, err := f.AddSheet("Event Contracts")
		if err != nil {
			return eris.Wrap(err, "add sheet")
		}
		for _, row := range rows {
			r := sheet.AddRow()
			for _, cell := range row {
				r.AddCell().SetValue(cell)
			}
		}

		if err := f.Save(exportOut); err != nil {
			return eris.Wrap(err, "write workbook")
		}

		zap.L().Info("sheet exported",
			zap.String("path", exportOut),
			zap.Int("rows", len(rows)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "event-contracts.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
