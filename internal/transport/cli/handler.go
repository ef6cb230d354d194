package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/you-humble/computer-shop/internal/cart"
	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/platform/logger"
)

type ShopService interface {
	ListCatalog() string
	AddPart(ctx context.Context, p model.Part) (int, error)

	Register(ctx context.Context, username, email, password string) error
	SignIn(ctx context.Context, username, email, password string) error
	OpenCart(ctx context.Context, username string) (*cart.Cart, error)
	Authorize(ctx context.Context, password string) error

	Reserve(ctx context.Context, name string) (int, error)
	Release(ctx context.Context, name string) (int, error)
	ShowCart() (string, error)
	Purchase(ctx context.Context) (*model.Receipt, string, error)
	CloseCart(ctx context.Context) error
}

// errQuit ends the session when input runs out.
var errQuit = errors.New("input closed")

// Handler drives the interactive menus over a line based reader and writer.
type Handler struct {
	svc ShopService
	in  *bufio.Scanner
	out io.Writer

	ok    *color.Color
	fail  *color.Color
	title *color.Color
}

func NewHandler(svc ShopService, in io.Reader, out io.Writer, useColor bool) *Handler {
	h := &Handler{
		svc:   svc,
		in:    bufio.NewScanner(in),
		out:   out,
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		title: color.New(color.Bold),
	}
	if !useColor {
		for _, c := range []*color.Color{h.ok, h.fail, h.title} {
			c.DisableColor()
		}
	}
	return h
}

// Run shows the Main Menu until the user picks Close or input ends.
func (h *Handler) Run(ctx context.Context) error {
	h.title.Fprintln(h.out, "~~ Welcome to the Computer Store ~~")
	h.println()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, err := h.choose(mainMenu)
		if err != nil {
			return h.quit(ctx, err)
		}

		switch cmd {
		case cmdNewWishList:
			err = h.newWishList(ctx)
		case cmdListDatabase:
			h.println()
			h.println(h.svc.ListCatalog())
			h.println()
		case cmdAddPartToDatabase:
			h.println()
			err = h.addParts(ctx)
		case cmdClose:
			h.println()
			h.println("See you again soon.")
			return nil
		}
		if err != nil {
			return h.quit(ctx, err)
		}
	}
}

func (h *Handler) quit(ctx context.Context, err error) error {
	if errors.Is(err, errQuit) {
		logger.Info(ctx, "input closed, leaving the shop")
		return nil
	}
	return err
}

func (h *Handler) println(a ...any) {
	fmt.Fprintln(h.out, a...)
}

func (h *Handler) success(format string, a ...any) {
	h.ok.Fprintf(h.out, format+"\n", a...)
}

func (h *Handler) failure(format string, a ...any) {
	h.fail.Fprintf(h.out, format+"\n", a...)
}
