package cmd_test

import (
	"testing"

	"movers/cmd"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() cmd.Config {
	return cmd.Config{
		ServiceName: "movers",
		Payments:    cmd.PaymentsConfig{StripeSecretKey: "sk_test", Currency: "usd"},
		Verification: cmd.VerificationConfig{
			URL: "http://verify.local",
		},
		Geocoder: cmd.GeocoderConfig{
			AddressURL: "http://geocode.local/address",
			IPURL:      "http://geocode.local/ip",
		},
		Jobs: cmd.JobsConfig{ExpirySchedule: "@every 1m", ExpiryBatchSize: 10},
	}
}

func TestCompositionRoot_WiresEveryHTTPHandler(t *testing.T) {
	root, err := cmd.NewCompositionRoot(testConfig(), nil, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, root.Close()) })

	h := root.HTTPHandlers()
	assert.NotNil(t, h.RegisterCustomer)
	assert.NotNil(t, h.RegisterMover)
	assert.NotNil(t, h.RecordBackgroundCheck)
	assert.NotNil(t, h.UpdateMoverLocation)
	assert.NotNil(t, h.SubmitRating)
	assert.NotNil(t, h.RecomputeMoverRating)
	assert.NotNil(t, h.CreateOrder)
	assert.NotNil(t, h.ConfirmPayment)
	assert.NotNil(t, h.CompleteOrder)
	assert.NotNil(t, h.CancelOrder)
	assert.NotNil(t, h.GetMover)
	assert.NotNil(t, h.FindNearestMovers)
	assert.NotNil(t, h.SearchMovers)
	assert.NotNil(t, h.ListMoverRatings)
	assert.NotNil(t, h.GetOrder)
	assert.NotNil(t, h.QuoteOrder)
}

func TestCompositionRoot_Jobs(t *testing.T) {
	cfg := testConfig()

	root, err := cmd.NewCompositionRoot(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, root.Jobs())

	cfg.Jobs.ExpiryEnabled = true
	root, err = cmd.NewCompositionRoot(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.Len(t, root.Jobs(), 1)
}

func TestCompositionRoot_OptionalAdapters(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Redis.URL = "redis://" + mr.Addr()
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.TopicPrefix = "movers."

	root, err := cmd.NewCompositionRoot(cfg, nil, nil, nil)
	require.NoError(t, err)
	assert.NoError(t, root.Close())
}
