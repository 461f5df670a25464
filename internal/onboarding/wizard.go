package onboarding

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/repository"
)

var ErrNameRequired = errors.New("name is required")

// Wizard drives the fixed eight-step onboarding sequence for one draft key.
// Every mutation persists the whole aggregate through the draft store, so a
// page reload resumes the same in-progress state.
type Wizard struct {
	key      string
	step     int
	draft    Draft
	clientID *uuid.UUID // set when editing an existing client

	store   DraftStore
	clients repository.ClientRepository
	log     *zap.Logger
}

func New(key string, store DraftStore, clients repository.ClientRepository, log *zap.Logger) *Wizard {
	return &Wizard{
		key:     key,
		store:   store,
		clients: clients,
		log:     log,
	}
}

// Resume loads the persisted state for key. A missing draft starts fresh.
func Resume(ctx context.Context, key string, store DraftStore, clients repository.ClientRepository, log *zap.Logger) (*Wizard, error) {
	w := New(key, store, clients, log)
	st, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrDraftNotFound) {
			return w, nil
		}
		return nil, err
	}
	w.step = st.Step
	w.draft = st.Draft
	return w, nil
}

func (w *Wizard) Step() int     { return w.step }
func (w *Wizard) Draft() Draft  { return w.draft }
func (w *Wizard) Key() string   { return w.key }
func (w *Wizard) Terminal() bool { return w.step == StepCount-1 }

// ForClient marks the wizard as editing an existing client, so Submit
// updates instead of creating.
func (w *Wizard) ForClient(id uuid.UUID) {
	w.clientID = &id
}

func (w *Wizard) persist(ctx context.Context) error {
	return w.store.Save(ctx, w.key, State{Step: w.step, Draft: w.draft})
}

// Advance merges stepData and moves forward. At the terminal step it sweeps
// the per-step sub-forms instead of moving, so nothing typed is lost before
// Submit.
func (w *Wizard) Advance(ctx context.Context, data *StepData) error {
	w.draft.merge(data)
	if w.Terminal() {
		w.draft.sweepDrafts()
	} else {
		w.step++
	}
	return w.persist(ctx)
}

// Retreat merges stepData and moves back; no-op at step 0.
func (w *Wizard) Retreat(ctx context.Context, data *StepData) error {
	w.draft.merge(data)
	if w.step > 0 {
		w.step--
	}
	return w.persist(ctx)
}

// JumpTo moves straight to a step from the progress indicator. Intermediate
// steps are never validated.
func (w *Wizard) JumpTo(ctx context.Context, index int) error {
	if index < 0 || index >= StepCount {
		return errors.New("step index out of range")
	}
	w.step = index
	return w.persist(ctx)
}

// The add actions are the only place a required-name rule blocks anything,
// and it blocks just the add itself, never navigation.

func (w *Wizard) AddBranch(ctx context.Context, b BranchForm) error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrNameRequired
	}
	w.draft.Branches = append(w.draft.Branches, b)
	w.draft.BranchDraft = nil
	return w.persist(ctx)
}

func (w *Wizard) AddCompetitor(ctx context.Context, cp CompetitorForm) error {
	if strings.TrimSpace(cp.Name) == "" {
		return ErrNameRequired
	}
	w.draft.Competitors = append(w.draft.Competitors, cp)
	w.draft.CompetitorDraft = nil
	return w.persist(ctx)
}

func (w *Wizard) AddSegment(ctx context.Context, s SegmentForm) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	w.draft.Segments = append(w.draft.Segments, s)
	w.draft.SegmentDraft = nil
	return w.persist(ctx)
}

// BulkResult reports one best-effort sub-resource write.
type BulkResult struct {
	Attempted bool   `json:"attempted"`
	Count     int    `json:"count"`
	Error     string `json:"error,omitempty"`
}

type SubmitResult struct {
	ClientID    uuid.UUID  `json:"client_id"`
	Created     bool       `json:"created"`
	Segments    BulkResult `json:"segments"`
	Competitors BulkResult `json:"competitors"`
	Branches    BulkResult `json:"branches"`
}

// Submit finalizes the wizard: write the primary client record, then issue
// one bulk-create per non-empty list. The bulk calls are independent; a
// failure is logged and does not roll back the client or block the other
// lists. On success the stored draft is deleted.
func (w *Wizard) Submit(ctx context.Context) (*SubmitResult, error) {
	w.draft.sweepDrafts()

	var id uuid.UUID
	if w.clientID != nil {
		id = *w.clientID
	}
	client := w.draft.toClient(id)

	res := &SubmitResult{}
	if w.clientID != nil {
		if err := w.clients.Update(ctx, &client); err != nil {
			return nil, err
		}
	} else {
		if err := w.clients.Create(ctx, &client); err != nil {
			return nil, err
		}
		res.Created = true
	}
	res.ClientID = client.ID

	if segs := w.draft.toSegments(); len(segs) > 0 {
		res.Segments.Attempted = true
		res.Segments.Count = len(segs)
		if err := w.clients.BulkCreateSegments(ctx, client.ID, segs); err != nil {
			res.Segments.Error = err.Error()
			w.log.Error("bulk segment create failed",
				zap.String("client_id", client.ID.String()), zap.Error(err))
		}
	}
	if comps := w.draft.toCompetitors(); len(comps) > 0 {
		res.Competitors.Attempted = true
		res.Competitors.Count = len(comps)
		if err := w.clients.BulkCreateCompetitors(ctx, client.ID, comps); err != nil {
			res.Competitors.Error = err.Error()
			w.log.Error("bulk competitor create failed",
				zap.String("client_id", client.ID.String()), zap.Error(err))
		}
	}
	if brs := w.draft.toBranches(); len(brs) > 0 {
		res.Branches.Attempted = true
		res.Branches.Count = len(brs)
		if err := w.clients.BulkCreateBranches(ctx, client.ID, brs); err != nil {
			res.Branches.Error = err.Error()
			w.log.Error("bulk branch create failed",
				zap.String("client_id", client.ID.String()), zap.Error(err))
		}
	}

	if err := w.store.Delete(ctx, w.key); err != nil {
		w.log.Warn("failed to clear submitted draft",
			zap.String("key", w.key), zap.Error(err))
	}
	w.draft = Draft{}
	w.step = 0

	return res, nil
}

// Reset throws the in-progress draft away.
func (w *Wizard) Reset(ctx context.Context) error {
	w.draft = Draft{}
	w.step = 0
	return w.store.Delete(ctx, w.key)
}
