package world

import (
	"context"
	"encoding/json"
	"time"

	"tilecraft.ai/internal/protocol"
)

type clientState struct {
	out chan []byte
}

type attachReq struct {
	out  chan []byte
	resp chan AttachResponse
}

// AttachResponse carries everything the transport needs to welcome the
// renderer/UI client.
type AttachResponse struct {
	Params   protocol.WorldParams
	Digests  protocol.CatalogDigests
	Catalogs []protocol.CatalogMsg
}

// Run drives the fixed-interval simulation loop until the context ends or
// Stop is called. Intents arriving between ticks queue up and apply inside
// the tick they precede.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.tune.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pending []ActionEnvelope
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case env := <-w.inbox:
			pending = append(pending, env)
		case req := <-w.attach:
			w.handleAttach(req)
		case <-ticker.C:
			w.step(pending)
			pending = pending[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

// SubmitAct queues intents for the next tick. Safe to call from the
// transport goroutine.
func (w *World) SubmitAct(act protocol.ActMsg) {
	select {
	case w.inbox <- ActionEnvelope{Act: act}:
	default:
		// Inbox full: the client is far ahead of the simulation; drop.
	}
}

// Attach registers the renderer/UI session's outgoing frame channel,
// replacing any previous session, and returns the world parameters and
// catalogs for the welcome handshake.
func (w *World) Attach(out chan []byte) AttachResponse {
	resp := make(chan AttachResponse, 1)
	w.attach <- attachReq{out: out, resp: resp}
	return <-resp
}

func (w *World) handleAttach(req attachReq) {
	w.client = &clientState{out: req.out}
	req.resp <- AttachResponse{
		Params: protocol.WorldParams{
			TickRateHz:  w.tune.TickRateHz,
			GridWidth:   w.tune.GridWidth,
			GridHeight:  w.tune.GridHeight,
			CellExpanse: w.tune.CellExpanse,
			Seed:        w.cfg.Seed,
		},
		Digests: protocol.CatalogDigests{
			BlocksDigest:  w.cats.Blocks.Digest,
			ItemsDigest:   w.cats.Items.Digest,
			RecipesDigest: w.cats.Recipes.Digest,
		},
		Catalogs: w.catalogMessages(),
	}
}

func (w *World) catalogMessages() []protocol.CatalogMsg {
	blockDefs := make([]interface{}, 0, len(w.cats.Blocks.IDs))
	for _, id := range w.cats.Blocks.IDs {
		blockDefs = append(blockDefs, w.cats.Blocks.Defs[id])
	}
	itemDefs := make([]interface{}, 0, len(w.cats.Items.IDs))
	for _, id := range w.cats.Items.IDs {
		itemDefs = append(itemDefs, w.cats.Items.Defs[id])
	}
	return []protocol.CatalogMsg{
		{Type: protocol.TypeCatalog, ProtocolVersion: protocol.Version, Name: "blocks", Digest: w.cats.Blocks.Digest, Data: blockDefs},
		{Type: protocol.TypeCatalog, ProtocolVersion: protocol.Version, Name: "items", Digest: w.cats.Items.Digest, Data: itemDefs},
		{Type: protocol.TypeCatalog, ProtocolVersion: protocol.Version, Name: "recipes", Digest: w.cats.Recipes.Digest, Data: w.cats.Recipes.Defs},
	}
}

// sendObs serializes and sends the snapshot to the attached client, if any.
// A slow client drops frames rather than stalling the simulation.
func (w *World) sendObs(obs protocol.ObsMsg) {
	if w.client == nil {
		return
	}
	b, err := json.Marshal(obs)
	if err != nil {
		if w.logger != nil {
			w.logger.Printf("marshal obs: %v", err)
		}
		return
	}
	select {
	case w.client.out <- b:
	default:
	}
}
