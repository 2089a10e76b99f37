package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/easy-style/internal/cli"
)

func purchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchases",
		Short: "Review purchase requests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List purchase requests (all of them without --email)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			who := localAdmin()
			if email, _ := cmd.Flags().GetString("email"); email != "" {
				var err error
				if who, err = localUser(email); err != nil {
					return err
				}
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			overview, err := newPurchases(store).List(cmd.Context(), who)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, cli.RenderPurchaseRequests("대기 중인 요청", overview.Pending))
			fmt.Fprint(out, cli.RenderPurchaseRequests("완료된 요청", overview.Completed))
			return nil
		},
	}
	list.Flags().String("email", "", "only show this user's requests")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a pending request as purchased",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			req, err := newPurchases(store).Complete(cmd.Context(), localAdmin(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s 님의 요청을 완료했습니다: %s", req.UserEmail, req.ID)))
			return nil
		},
	})

	return cmd
}
