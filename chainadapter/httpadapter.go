// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff"
	cerrors "github.com/cockroachdb/errors"
	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/ids"
)

// HTTPAdapter implements Adapter against the chain RPC library's JSON/HTTP
// surface (spec §6.6). It holds no state of its own beyond the HTTP client;
// the chain remains the sole source of truth.
type HTTPAdapter struct {
	baseURL string
	client  *http.Client
	log     liblog.Logger
}

// NewHTTPAdapter returns an HTTPAdapter targeting baseURL.
func NewHTTPAdapter(baseURL string, client *http.Client, logger liblog.Logger) *HTTPAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAdapter{baseURL: baseURL, client: client, log: logger}
}

// Dial blocks until the chain RPC adapter answers a liveness probe or ctx
// is done, using exponential backoff. This is the only retrying call in
// the package: per-cycle RPCs never retry (spec §5), but a cold-started
// validator should not fail its first cycle just because the chain RPC
// sidecar hasn't finished booting yet.
func (a *HTTPAdapter) Dial(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	return backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/healthz", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := a.client.Do(req)
		if err != nil {
			a.log.Warn("chain rpc not yet reachable", "err", err)
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return cerrors.Newf("chain rpc healthz returned %d", resp.StatusCode)
		}
		return nil
	}, backoff.WithContext(bo, ctx))
}

type metagraphResponse struct {
	Hotkeys         []string `json:"hotkeys"`
	UIDs            []uint16 `json:"uids"`
	Stake           []uint64 `json:"stake"`
	ValidatorPermit []bool   `json:"validator_permit"`
}

// FetchPeers implements Adapter.
func (a *HTTPAdapter) FetchPeers(ctx context.Context, netuid uint16) (MetagraphSnapshot, error) {
	var mg metagraphResponse
	if err := a.call(ctx, "/metagraph", map[string]interface{}{"netuid": netuid}, &mg); err != nil {
		return MetagraphSnapshot{}, cerrors.Mark(
			cerrors.Wrapf(err, "fetch metagraph for netuid %d", netuid), ErrChainUnavailable)
	}
	if len(mg.Hotkeys) != len(mg.UIDs) || len(mg.Hotkeys) != len(mg.Stake) || len(mg.Hotkeys) != len(mg.ValidatorPermit) {
		return MetagraphSnapshot{}, cerrors.Newf("chainadapter: metagraph response has mismatched slice lengths")
	}

	var commitments map[string]string
	if err := a.call(ctx, "/get_all_commitments", map[string]interface{}{"netuid": netuid}, &commitments); err != nil {
		return MetagraphSnapshot{}, cerrors.Mark(
			cerrors.Wrapf(err, "fetch commitments for netuid %d", netuid), ErrChainUnavailable)
	}

	peers := make([]Peer, len(mg.Hotkeys))
	for i, hotkey := range mg.Hotkeys {
		peers[i] = Peer{
			UID:         ids.UID(mg.UIDs[i]),
			Hotkey:      ids.Hotkey(hotkey),
			Commitment:  commitments[hotkey],
			Stake:       mg.Stake[i],
			IsValidator: mg.ValidatorPermit[i],
		}
	}
	return MetagraphSnapshot{Netuid: netuid, Peers: peers}, nil
}

type setWeightsRequest struct {
	Netuid     uint16   `json:"netuid"`
	UIDs       []uint16 `json:"uids"`
	Weights    []uint16 `json:"weights"`
	VersionKey uint32   `json:"version_key"`
}

type setWeightsResponse struct {
	OK   bool   `json:"ok"`
	Info string `json:"info"`
}

// PublishWeights implements Adapter.
func (a *HTTPAdapter) PublishWeights(ctx context.Context, netuid uint16, uids []ids.UID, weights []uint16, versionKey uint32) (Ack, error) {
	if len(uids) != len(weights) {
		return Ack{}, cerrors.Wrapf(ErrInvalidPublishRequest, "len(uids)=%d len(weights)=%d", len(uids), len(weights))
	}
	var sum uint64
	for _, w := range weights {
		sum += uint64(w)
	}
	if sum == 0 {
		return Ack{}, cerrors.Wrap(ErrInvalidPublishRequest, "sum(weights) == 0")
	}

	rawUIDs := make([]uint16, len(uids))
	for i, u := range uids {
		rawUIDs[i] = uint16(u)
	}

	var resp setWeightsResponse
	if err := a.call(ctx, "/set_weights", setWeightsRequest{
		Netuid: netuid, UIDs: rawUIDs, Weights: weights, VersionKey: versionKey,
	}, &resp); err != nil {
		return Ack{}, cerrors.Mark(cerrors.Wrapf(err, "publish weights for netuid %d", netuid), ErrChainUnavailable)
	}
	return Ack{OK: resp.OK, Info: resp.Info}, nil
}

func (a *HTTPAdapter) call(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chainadapter: %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
