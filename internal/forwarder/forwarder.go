// Package forwarder relays RFID tag ids read from a serial reader to the
// ledger server's scan hook.
package forwarder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

type Forwarder struct {
	server string
	client *http.Client
}

func New(server string, client *http.Client) *Forwarder {
	if client == nil {
		client = http.DefaultClient
	}
	return &Forwarder{server: strings.TrimRight(server, "/"), client: client}
}

// Run forwards one tag per line read from r until ctx is cancelled or r
// fails. Failed forwards are logged and skipped. It returns the number of
// tags forwarded successfully.
func (f *Forwarder) Run(ctx context.Context, r io.Reader) (int, error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	forwarded := 0
	for {
		select {
		case <-ctx.Done():
			return forwarded, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return forwarded, err
				default:
					return forwarded, ctx.Err()
				}
			}
			tag := strings.TrimSpace(line)
			if tag == "" {
				continue
			}
			if err := f.Forward(ctx, tag); err != nil {
				log.Printf("[FORWARDER] Failed to forward %s: %v", tag, err)
				continue
			}
			forwarded++
			log.Printf("[FORWARDER] Forwarded %s", tag)
		}
	}
}

// Forward issues GET <server>/scan/<tag>.
func (f *Forwarder) Forward(ctx context.Context, tag string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server+"/scan/"+url.PathEscape(tag), nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server responded %s", resp.Status)
	}
	return nil
}
