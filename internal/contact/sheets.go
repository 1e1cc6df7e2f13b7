package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const valueInputUserEntered = "USER_ENTERED"

var ErrSheetsCredentials = errors.New("contact: sheets client email and private key are required")

// SheetsConfig holds the service account used to append rows. Endpoint and
// HTTPClient replace the Google defaults, HTTPClient also skipping the
// service account token exchange.
type SheetsConfig struct {
	ClientEmail string
	PrivateKey  string
	Endpoint    string
	HTTPClient  *http.Client
}

// SheetsAppender appends rows through the Sheets values API.
type SheetsAppender struct {
	service *sheets.Service
}

func NewSheetsAppender(ctx context.Context, cfg SheetsConfig) (*SheetsAppender, error) {
	var opts []option.ClientOption
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	} else {
		if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
			return nil, ErrSheetsCredentials
		}
		conf := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: []byte(NormalizePrivateKey(cfg.PrivateKey)),
			Scopes:     []string{sheets.SpreadsheetsScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = append(opts, option.WithHTTPClient(conf.Client(ctx)))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("contact: sheets service: %w", err)
	}
	return &SheetsAppender{service: service}, nil
}

func (a *SheetsAppender) AppendRow(ctx context.Context, sheetID, tab string, row []any) error {
	_, err := a.service.Spreadsheets.Values.
		Append(sheetID, tab, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption(valueInputUserEntered).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("contact: append row: %w", err)
	}
	return nil
}

// NormalizePrivateKey turns escaped newlines from environment variables
// back into a PEM block.
func NormalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
