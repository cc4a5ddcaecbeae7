package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Eximchain/dappbot-types/pkg/response"
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope [file]",
	Short: "Wrap a body in a response envelope",
	Long: `Wrap the input body in a {data, err} envelope and print it with the
status code the API would send.

Examples:
  dappbotctl envelope --read read-result.json
  dappbotctl envelope --err --code 409 error.json
  dappbotctl envelope --create --proxy item.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnvelope,
}

func init() {
	envelopeCmd.Flags().Bool("err", false, "put the body on the err side")
	envelopeCmd.Flags().Bool("create", false, "the body is the result of a create (201)")
	envelopeCmd.Flags().Bool("read", false, "the body is the result of a read (404 when exists is falsy)")
	envelopeCmd.Flags().Int("code", 0, "status code for an error envelope (default 500)")
	envelopeCmd.Flags().Bool("proxy", false, "print the full proxy response with headers")

	rootCmd.AddCommand(envelopeCmd)
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	in := "-"
	if len(args) == 1 {
		in = args[0]
	}
	body, err := readInput(cmd, in)
	if err != nil {
		return err
	}

	isErr, _ := cmd.Flags().GetBool("err")
	isCreate, _ := cmd.Flags().GetBool("create")
	isRead, _ := cmd.Flags().GetBool("read")
	code, _ := cmd.Flags().GetInt("code")
	proxy, _ := cmd.Flags().GetBool("proxy")

	res := response.Build(body, response.Options{
		IsErr:             isErr,
		IsCreate:          isCreate,
		IsRead:            isRead,
		ErrorResponseCode: code,
	})
	p := res.Proxy()

	if proxy || jsonOut {
		return printJSON(cmd, p)
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.StatusCode)
	fmt.Fprintln(cmd.OutOrStdout(), p.Body)
	return nil
}
