package browser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const entryHref = "/api/"

// Browser drives the API from a console. It holds the current location and
// one step of history: when a fetch fails or returns something that is not
// a document, it falls back to where it last stood.
type Browser struct {
	client *Client
	in     *bufio.Reader
	out    io.Writer
}

// New creates a browser reading picks from in and writing menus to out.
func New(client *Client, in io.Reader, out io.Writer) *Browser {
	return &Browser{
		client: client,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run walks the API from the entry point until the context is cancelled or
// the input ends. Navigation is driven entirely by the controls of each
// fetched document.
func (b *Browser) Run(ctx context.Context) error {
	fmt.Fprintln(b.out, "Press the interrupt key (normally Control-C or Delete) to exit")

	href, prevHref := entryHref, entryHref

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		resp, err := b.client.Get(ctx, href)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			fmt.Fprintln(b.out, "Request failed:", err)
			href = prevHref
			continue
		}
		if !resp.OK() {
			href = prevHref
			continue
		}

		b.banner('=', href)

		if resp.Document == nil {
			b.banner('*', "Text response")
			fmt.Fprintln(b.out, resp.Text)
			href = prevHref
			continue
		}

		ctrl, err := b.promptChoice(resp.Document)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if err := b.handleAction(ctx, ctrl); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if href != ctrl.Href {
			prevHref = href
			href = ctrl.Href
		}
	}
}

// handleAction performs whatever the picked control asks for beyond
// navigation. Controls with a schema prompt for a body and submit it;
// delete controls fire without one. Plain GET controls do nothing here,
// the loop simply moves to their href.
func (b *Browser) handleAction(ctx context.Context, ctrl *Control) error {
	if ctrl.Schema != nil {
		data, err := b.promptSchema(ctrl.Schema)
		if err != nil {
			return err
		}
		resp, err := b.client.Submit(ctx, ctrl.Method, ctrl.Href, data)
		if err != nil {
			return err
		}
		b.printOutcome(resp)
	}

	if strings.EqualFold(ctrl.Method, http.MethodDelete) {
		resp, err := b.client.Submit(ctx, http.MethodDelete, ctrl.Href, nil)
		if err != nil {
			return err
		}
		b.printOutcome(resp)
	}

	return nil
}
