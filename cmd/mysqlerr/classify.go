package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/ovh/mysqlerr/db/dberrors"
	"github.com/ovh/mysqlerr/pkg/utils"
)

var (
	fNotInitialized bool
	fNoConnection   bool
)

func init() {
	classifyCmd.Flags().BoolVar(&fNotInitialized, "not-initialized", false, "Classify as if the client library was not initialized")
	classifyCmd.Flags().BoolVar(&fNoConnection, "no-connection", false, "Classify as if no server connection was available")

	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify CODE [MESSAGE]",
	Short: "Classify a server error number",
	Long: "Resolve a MySQL server error number, and its optional message,\n" +
		"into its error category. The result is printed as JSON.",
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(cmd.OutOrStdout(), args, !fNotInitialized, !fNoConnection)
	},
}

type classifyOut struct {
	*dberrors.ClassifiedError
	Description string `json:"description"`
}

func runClassify(w io.Writer, args []string, initialized, connected bool) error {
	code, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.NotValidf("error code %q", args[0])
	}
	var message string
	if len(args) > 1 {
		message = args[1]
	}

	ce := dberrors.Classify(initialized, code, message, connected)
	out, err := utils.JSONMarshalIndent(classifyOut{
		ClassifiedError: ce,
		Description:     ce.Category.Description(),
	}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
