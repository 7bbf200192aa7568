package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pool-calc-backend/internal/handlers"
)

func NewCmdHashPassword() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [PASSWORD]",
		Short: "Print a bcrypt hash for POOLCALC_ADMIN_PASSWORD_HASH.",
		Long:  "Print a bcrypt hash for POOLCALC_ADMIN_PASSWORD_HASH. Without an argument the password is read from stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					password = strings.TrimSpace(sc.Text())
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password is empty")
			}

			hash, err := handlers.HashPassword(password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
		SilenceUsage: true,
	}
}
