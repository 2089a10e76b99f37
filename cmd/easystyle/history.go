package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/cli"
	"github.com/Veraticus/easy-style/internal/history"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved styling results",
	}
	cmd.PersistentFlags().String("email", "", "user whose history to use (required)")
	_ = cmd.MarkPersistentFlagRequired("email")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved results, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			who, err := localUser(email)
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			histories, err := newHistory(cmd.Context(), store)
			if err != nil {
				return err
			}
			items, err := histories.List(cmd.Context(), who)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderHistory(items))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "share <id>",
		Short: "Upload a saved result and print a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			who, err := localUser(email)
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			histories, err := newHistory(cmd.Context(), store)
			if err != nil {
				return err
			}
			shared, err := histories.Share(cmd.Context(), who, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, shared.Text)
			fmt.Fprintln(out, shared.Link.URL)
			fmt.Fprintln(out, cli.SubtleStyle.Render("만료: "+shared.Link.ExpiresAt.Local().Format("2006-01-02 15:04")))
			return nil
		},
	})

	cmd.AddCommand(historyOpenCmd())

	return cmd
}

func historyOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <id>",
		Short: "Reopen a saved result and pick products from it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			email, _ := cmd.Flags().GetString("email")
			imagesDir, _ := cmd.Flags().GetString("images")
			selectProducts, _ := cmd.Flags().GetBool("select")

			who, err := localUser(email)
			if err != nil {
				return err
			}
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			histories, err := newHistory(ctx, store)
			if err != nil {
				return err
			}
			session, item, err := openHistory(ctx, histories, who, args[0])
			if err != nil {
				fmt.Fprintln(out, cli.RenderError(err))
				return err
			}

			fmt.Fprintln(out, cli.SubtleStyle.Render(item.Prompt))
			fmt.Fprintln(out, cli.RenderResult(item.Result()))
			if imagesDir != "" {
				if err := exportProductImages(ctx, out, imagesDir, item.Result()); err != nil {
					return err
				}
			}
			if !selectProducts {
				return nil
			}
			return requestPurchase(cmd, store, session, who)
		},
	}
	cmd.Flags().String("images", "", "directory for product card images")
	cmd.Flags().Bool("select", true, "pick products for a purchase request")
	return cmd
}

// openHistory loads a saved result into a fresh session.
func openHistory(ctx context.Context, histories *history.Service, who account.Principal, id string) (*styling.Session, *model.StyleHistoryItem, error) {
	item, err := histories.Get(ctx, who, id)
	if err != nil {
		return nil, nil, err
	}
	session := styling.NewSession()
	session.LoadHistory(*item)
	return session, item, nil
}
