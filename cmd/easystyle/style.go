package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/cli"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/service"
	"github.com/Veraticus/easy-style/internal/styling"
	"github.com/Veraticus/easy-style/internal/tui"
)

func styleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Restyle a photo and recommend products",
		Long: `Restyle a photo from a short prompt. The styled image is written to --out
and the recommended products are listed by category.

With --images a card image for every product is written to that directory.
With --email the result is saved to that user's history and the products
can be picked interactively and sent as a purchase request.`,
		Example: `  easystyle style --photo me.jpg --prompt "주말 데이트룩" --ask
  easystyle style --photo me.jpg --prompt "출근룩" --email kim@example.com`,
		RunE: runStyle,
	}

	cmd.Flags().String("photo", "", "path to the source photo (required)")
	cmd.Flags().String("prompt", "", "style request (required)")
	cmd.Flags().String("answer", "", "answer to the follow-up question")
	cmd.Flags().Bool("ask", false, "ask the AI for a follow-up question first")
	cmd.Flags().String("out", "styled.png", "where to write the styled image")
	cmd.Flags().String("images", "", "directory for product card images")
	cmd.Flags().String("email", "", "save the result for this user")
	cmd.Flags().Bool("select", true, "pick products for a purchase request (needs --email)")
	_ = cmd.MarkFlagRequired("photo")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func runStyle(cmd *cobra.Command, _ []string) error {
	photoPath, _ := cmd.Flags().GetString("photo")
	prompt, _ := cmd.Flags().GetString("prompt")
	answer, _ := cmd.Flags().GetString("answer")
	ask, _ := cmd.Flags().GetBool("ask")
	outPath, _ := cmd.Flags().GetString("out")
	imagesDir, _ := cmd.Flags().GetString("images")
	email, _ := cmd.Flags().GetString("email")
	selectProducts, _ := cmd.Flags().GetBool("select")

	out := cmd.OutOrStdout()
	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "스타일 생성을 취소했습니다.")
	ctx, stop := interrupts.HandleInterrupts(cmd.Context())
	defer stop()

	data, err := os.ReadFile(photoPath)
	if err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}
	photo, err := model.NewImage(data, "")
	if err != nil {
		return err
	}

	gateway, err := initGateway(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = gateway.Close() }()
	pipeline := newPipeline(gateway)

	if ask && answer == "" {
		q, err := pipeline.ProposeFollowUpQuestion(ctx, prompt)
		if err != nil {
			fmt.Fprintln(out, cli.RenderError(err))
		} else {
			answer, err = cli.Ask(ctx, out, cli.NewNonBlockingReader(cmd.InOrStdin()), q.Question, q.Examples)
			if err != nil {
				return err
			}
		}
	}
	fullPrompt := styling.ComposePrompt(prompt, answer)

	session := styling.NewSession()
	token, err := session.Begin()
	if err != nil {
		return err
	}

	progress := cli.NewStageProgress(cmd.ErrOrStderr())
	result, err := pipeline.ExecuteStyleGeneration(ctx, photo, fullPrompt, styling.WithProgress(progress.Update))
	if err != nil {
		session.Fail(token)
		fmt.Fprintln(out, cli.RenderError(err))
		return err
	}
	if err := session.Apply(token, result); err != nil {
		return err
	}

	if err := writeStyledImage(outPath, result.ImageBase64); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.RenderResult(*result))
	fmt.Fprintln(out, cli.FormatSuccess("스타일 이미지를 저장했습니다: "+outPath))
	if imagesDir != "" {
		if err := exportProductImages(ctx, out, imagesDir, *result); err != nil {
			return err
		}
	}

	if email == "" {
		return nil
	}
	return saveAndRequest(cmd, session, email, prompt, photo, *result, selectProducts)
}

func saveAndRequest(cmd *cobra.Command, session *styling.Session, email, prompt string, photo model.Image, result model.StyleResult, selectProducts bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

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
	item, err := histories.Save(ctx, who, prompt, photo, result)
	if err != nil {
		slog.Warn("failed to save history", "error", err)
	} else {
		fmt.Fprintln(out, cli.FormatSuccess("히스토리에 저장했습니다: "+item.ID))
	}

	if !selectProducts {
		return nil
	}
	return requestPurchase(cmd, store, session, who)
}

// requestPurchase lets the user pick products from the session's result
// and sends them as a purchase request.
func requestPurchase(cmd *cobra.Command, store service.Storage, session *styling.Session, who account.Principal) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	outcome, err := tui.SelectProducts(ctx, session, tui.WithIO(cmd.InOrStdin(), out), tui.WithAltScreen())
	if err != nil {
		return err
	}
	if !outcome.Confirmed {
		fmt.Fprintln(out, cli.FormatInfo("구매 요청을 보내지 않았습니다."))
		return nil
	}

	req, err := newPurchases(store).Create(ctx, who, outcome.Products)
	if err != nil {
		fmt.Fprintln(out, cli.RenderError(err))
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("구매 요청을 보냈습니다: %s (%d개, %s원)",
		req.ID, len(req.Products), model.FormatPrice(req.TotalPrice))))
	return nil
}

func writeStyledImage(path, encoded string) error {
	img, err := model.EncodedImage{Base64: encoded}.Decode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, img.Data, 0o600); err != nil {
		return fmt.Errorf("failed to write styled image: %w", err)
	}
	return nil
}
