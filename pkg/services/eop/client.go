package eop

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/de-tools/geff/pkg/metrics"
	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
)

const (
	DefaultEndpoint = "https://data.iers.org/eris/webservice/eop"

	paramXPole = "x_pole"
	paramYPole = "y_pole"

	maxResponseBytes = 1 << 20
)

// Bulletins are queried in this order; the next one is tried only when the
// previous one has no value for either pole component.
var Bulletins = []domain.Bulletin{domain.BulletinEOP14C04, domain.BulletinA}

// errUnreachable marks failures to complete a request at all.
var errUnreachable = errors.New("eop service unreachable")

// Client queries the IERS Earth orientation SOAP service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// QueryPoleCoordinates resolves polar motion for an MJD. Service failures are
// reported through the lookup status; the error is only set when ctx ends.
func (c *Client) QueryPoleCoordinates(ctx context.Context, mjd string) (domain.PoleLookup, error) {
	logger := zerolog.Ctx(ctx).With().Str("mjd", mjd).Logger()

	lookup, err := c.lookup(ctx, mjd)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.PoleLookup{}, ctxErr
		}
		lookup = domain.PoleLookup{
			Status:      domain.LookupUnavailable,
			Coordinates: domain.PoleCoordinates{Bulletin: domain.BulletinDefault},
			Reason:      err.Error(),
		}
	}

	metrics.IncEOPLookup(string(lookup.Status), string(lookup.Coordinates.Bulletin))
	logger.Debug().
		Str("status", string(lookup.Status)).
		Str("bulletin", string(lookup.Coordinates.Bulletin)).
		Str("reason", lookup.Reason).
		Msg("pole coordinates lookup finished")

	return lookup, nil
}

func (c *Client) lookup(ctx context.Context, mjd string) (domain.PoleLookup, error) {
	for _, bulletin := range Bulletins {
		x, err := c.readEOP(ctx, paramXPole, bulletin, mjd)
		if err != nil {
			return domain.PoleLookup{}, err
		}
		y, err := c.readEOP(ctx, paramYPole, bulletin, mjd)
		if err != nil {
			return domain.PoleLookup{}, err
		}

		if x == "" && y == "" {
			zerolog.Ctx(ctx).Info().
				Str("mjd", mjd).
				Str("bulletin", string(bulletin)).
				Msg("no pole values in bulletin")
			continue
		}

		coords := domain.PoleCoordinates{Bulletin: bulletin}
		if coords.XPole, err = scale(x); err != nil {
			return domain.PoleLookup{}, fmt.Errorf("x_pole: %w", err)
		}
		if coords.YPole, err = scale(y); err != nil {
			return domain.PoleLookup{}, fmt.Errorf("y_pole: %w", err)
		}

		if x == "" || y == "" {
			return domain.PoleLookup{
				Status:      domain.LookupPartial,
				Coordinates: coords,
				Reason:      fmt.Sprintf("%s returned only one pole component", bulletin),
			}, nil
		}
		return domain.PoleLookup{Status: domain.LookupResolved, Coordinates: coords}, nil
	}

	return domain.PoleLookup{
		Status:      domain.LookupUnavailable,
		Coordinates: domain.PoleCoordinates{Bulletin: domain.BulletinDefault},
		Reason:      "no values for epoch " + mjd,
	}, nil
}

func (c *Client) readEOP(ctx context.Context, param string, bulletin domain.Bulletin, mjd string) (string, error) {
	payload, err := xml.Marshal(newReadEOPRequest(param, string(bulletin), mjd))
	if err != nil {
		return "", fmt.Errorf("encoding readEOP request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"readEOP"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", errUnreachable, err)
	}

	var env responseEnvelope
	decodeErr := xml.Unmarshal(body, &env)

	switch {
	case resp.StatusCode == http.StatusOK && decodeErr == nil:
		return env.value(), nil
	case resp.StatusCode == http.StatusInternalServerError && decodeErr == nil && env.Body.Fault != nil:
		// A fault for one parameter means the series has no value for it.
		zerolog.Ctx(ctx).Debug().
			Str("param", param).
			Str("bulletin", string(bulletin)).
			Str("fault", env.Body.Fault.String).
			Msg("readEOP fault")
		return "", nil
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: unexpected status code %d from %s", errUnreachable, resp.StatusCode, c.endpoint)
	default:
		return "", fmt.Errorf("decoding readEOP response: %w", decodeErr)
	}
}

// scale converts milliarcseconds to arcseconds rounded to 4 decimals.
func scale(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("malformed value %q: %w", v, err)
	}
	return strconv.FormatFloat(math.Round(f/1000*1e4)/1e4, 'f', -1, 64), nil
}
