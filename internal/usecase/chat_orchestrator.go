package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/metrics"
	"ecomovex-service/pkg/utils"

	"github.com/google/uuid"
)

// fallbackConfidence is the rule-engine confidence below which edit-family
// classifications are remapped by the LLM.
const fallbackConfidence = 0.5

const intentFallbackPrompt = `Classify the user message into exactly one of:
ADD, REMOVE, MODIFY_TIME, MODIFY_DAY, MODIFY_LOCATION, CHANGE_BUDGET,
VIEW_PLAN, SUGGEST, GET_WEATHER, GET_ROUTE, SEARCH_DESTINATION, CHIT_CHAT.
Reply with the label only.`

// ChatOrchestrator is the single entry point for one conversation turn:
// classify, route, validate, compose, persist. It holds no state across turns
// beyond the per-conversation serialization locks.
type ChatOrchestrator struct {
	planRepo   repository.PlanRepository
	convRepo   repository.ConversationRepository
	llmRepo    repository.LLMRepository
	classifier *utils.IntentClassifier
	router     IntentRouter
	merger     *ResultMerger
	composer   *PromptComposer
	logger     logger.Logger
	metrics    *metrics.Metrics

	turnTimeout  time.Duration
	historyTurns int

	mu        sync.Mutex
	convLocks map[uint]*convLock
}

// NewChatOrchestrator creates a new chat orchestrator
func NewChatOrchestrator(
	planRepo repository.PlanRepository,
	convRepo repository.ConversationRepository,
	llmRepo repository.LLMRepository,
	classifier *utils.IntentClassifier,
	router IntentRouter,
	merger *ResultMerger,
	composer *PromptComposer,
	logger logger.Logger,
	metrics *metrics.Metrics,
	turnTimeout time.Duration,
	historyTurns int,
) *ChatOrchestrator {
	if turnTimeout <= 0 {
		turnTimeout = 30 * time.Second
	}
	if historyTurns <= 0 || historyTurns > maxHistoryTurns {
		historyTurns = maxHistoryTurns
	}
	return &ChatOrchestrator{
		planRepo:     planRepo,
		convRepo:     convRepo,
		llmRepo:      llmRepo,
		classifier:   classifier,
		router:       router,
		merger:       merger,
		composer:     composer,
		logger:       logger,
		metrics:      metrics,
		turnTimeout:  turnTimeout,
		historyTurns: historyTurns,
		convLocks:    map[uint]*convLock{},
	}
}

// HandleTurn processes one user turn end to end. Turns for the same
// conversation are strictly serialized; turns for different conversations are
// independent.
func (o *ChatOrchestrator) HandleTurn(ctx context.Context, req entity.ChatRequest) (*entity.ChatResponse, error) {
	if strings.TrimSpace(req.Utterance) == "" || len(req.Utterance) > entity.MaxUtteranceBytes {
		return nil, entity.ErrInvalidUtterance
	}

	lock := o.acquireConversation(req.ConversationID)
	defer o.releaseConversation(req.ConversationID, lock)

	ctx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	started := time.Now()
	requestID := uuid.New().String()
	log := o.logger.With("requestId", requestID, "conversationId", req.ConversationID)

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	turn := &TurnContext{Request: req, Now: now}

	plan, err := o.planRepo.GetActivePlan(ctx, req.UserID)
	if err != nil {
		log.Warn("Active plan lookup failed", "error", err)
	}
	if plan != nil {
		turn.Plan = plan.Clone()
	}

	turn.Intent, turn.IntentViaFallback = o.classify(ctx, req.Utterance, log)
	log.Info("Turn classified", "intent", string(turn.Intent.Type), "confidence", turn.Intent.Confidence)

	var dispatcherFindings []entity.Finding
	if handler := o.router.GetHandler(turn.Intent.Type); handler != nil {
		if err := handler.Handle(ctx, turn); err != nil {
			if errors.Is(err, entity.ErrPlanNotFound) {
				return nil, entity.ErrPlanNotFound
			}
			if ctx.Err() != nil {
				// Deadline hit: discard partial findings, persist nothing.
				o.metrics.ErrorsCount.WithLabelValues("turn_timeout").Inc()
				return nil, entity.ErrTimeout
			}
			// Anything else degrades to a chit-chat style reply with a
			// diagnostic warning.
			log.Error("Turn handler failed, degrading to chit-chat", "error", err)
			turn.Intent.Type = entity.IntentChitChat
			dispatcherFindings = append(dispatcherFindings, entity.Finding{
				Agent:    entity.AgentDispatcher,
				Severity: entity.SeverityWarning,
				Message:  "something went wrong while handling the request",
			})
		}
	}

	if len(dispatcherFindings) > 0 {
		turn.Reports = append(turn.Reports, entity.AgentReport{
			Agent:    entity.AgentDispatcher,
			Findings: dispatcherFindings,
			Summary:  "request degraded",
		})
	}

	merged := o.merger.Merge(turn.Reports)
	o.countFindings(merged)

	history, err := o.convRepo.LoadLast(ctx, req.ConversationID, o.historyTurns)
	if err != nil {
		log.Warn("Conversation history load failed", "error", err)
	}

	messages := o.composer.Compose(turn, merged, history)
	o.metrics.LLMCalls.WithLabelValues("composer").Inc()
	reply := o.composer.Reply(ctx, messages, merged, turn.Mutated)

	if ctx.Err() != nil {
		o.metrics.ErrorsCount.WithLabelValues("turn_timeout").Inc()
		return nil, entity.ErrTimeout
	}

	if turn.Mutated {
		if err := o.planRepo.ReplacePlan(ctx, turn.Plan); err != nil {
			log.Error("Plan replacement failed", "error", err)
			o.metrics.ErrorsCount.WithLabelValues("plan_replace").Inc()
		} else {
			o.metrics.MutationsApplied.Inc()
		}
	}

	o.appendTurns(ctx, req, reply, now, log)

	o.metrics.TurnsProcessed.WithLabelValues(string(turn.Intent.Type)).Inc()
	o.metrics.TurnDuration.Observe(time.Since(started).Seconds())

	return o.assembleResponse(turn, merged, reply), nil
}

// classify runs the rule engine, then the LLM fallback for UNKNOWN or
// low-confidence edit classifications. The second return reports whether the
// fallback produced the intent; edit turns on that path skip the parser's
// completions so the LLM stays at two calls per turn at most.
func (o *ChatOrchestrator) classify(ctx context.Context, utterance string, log logger.Logger) (entity.Intent, bool) {
	intent := o.classifier.Classify(utterance)
	needsFallback := intent.Type == entity.IntentUnknown ||
		(intent.Type.IsEdit() && intent.Confidence < fallbackConfidence)
	if !needsFallback {
		return intent, false
	}

	o.metrics.LLMCalls.WithLabelValues("intent_fallback").Inc()
	reply, err := o.llmRepo.Complete(ctx, []entity.ChatMessage{
		{Role: entity.RoleSystem, Content: intentFallbackPrompt},
		{Role: entity.RoleUser, Content: utterance},
	}, 0.0, 16)
	if err != nil {
		log.Warn("Intent fallback failed, treating as chit-chat", "error", err)
		intent.Type = entity.IntentChitChat
		return intent, true
	}

	remapped := entity.IntentType(strings.ToUpper(strings.TrimSpace(reply)))
	switch remapped {
	case entity.IntentAdd, entity.IntentRemove, entity.IntentModifyTime,
		entity.IntentModifyDay, entity.IntentModifyLocation, entity.IntentChangeBudget,
		entity.IntentViewPlan, entity.IntentSuggest, entity.IntentGetWeather,
		entity.IntentGetRoute, entity.IntentSearchDestination, entity.IntentChitChat:
		intent.Type = remapped
	default:
		intent.Type = entity.IntentChitChat
	}
	return intent, true
}

// appendTurns persists the user and assistant turns. Append failures are
// logged, not fatal: the user already has their reply.
func (o *ChatOrchestrator) appendTurns(ctx context.Context, req entity.ChatRequest, reply string, now time.Time, log logger.Logger) {
	index, err := o.convRepo.NextTurnIndex(ctx, req.ConversationID)
	if err != nil {
		log.Error("Turn index lookup failed", "error", err)
		o.metrics.ErrorsCount.WithLabelValues("conversation_append").Inc()
		return
	}

	turns := []entity.ConversationTurn{
		{ConversationID: req.ConversationID, TurnIndex: index, Role: entity.RoleUser, Content: req.Utterance, Timestamp: now},
		{ConversationID: req.ConversationID, TurnIndex: index + 1, Role: entity.RoleAssistant, Content: reply, Timestamp: now},
	}
	for i := range turns {
		if err := o.convRepo.Append(ctx, &turns[i]); err != nil {
			log.Error("Conversation append failed", "turnIndex", turns[i].TurnIndex, "error", err)
			o.metrics.ErrorsCount.WithLabelValues("conversation_append").Inc()
		}
	}
}

func (o *ChatOrchestrator) assembleResponse(turn *TurnContext, merged MergedResult, reply string) *entity.ChatResponse {
	resp := &entity.ChatResponse{
		ReplyText:     reply,
		Plan:          entity.SnapshotOf(turn.Plan),
		Warnings:      []entity.Warning{},
		Modifications: []entity.Modification{},
		Intent:        string(turn.Intent.Type),
		Action:        turn.Action,
	}

	for _, f := range merged.Findings {
		if f.Severity != entity.SeverityInfo {
			resp.Warnings = append(resp.Warnings, entity.Warning{Agent: f.Agent, Message: f.Message})
		}
		if f.Suggestion != nil {
			mod := entity.Modification{
				Source:     f.Agent,
				Issue:      f.Message,
				Suggestion: f.Suggestion.Code,
			}
			if field, ok := f.Suggestion.Params["field"].(string); ok {
				mod.Field = field
			}
			resp.Modifications = append(resp.Modifications, mod)
		}
	}
	return resp
}

func (o *ChatOrchestrator) countFindings(merged MergedResult) {
	for _, f := range merged.Findings {
		o.metrics.ValidatorFindings.WithLabelValues(f.Agent, f.Severity).Inc()
	}
}

// convLock serializes turns for one conversation. refs counts holders and
// waiters so idle entries can be dropped from the map.
type convLock struct {
	mu   sync.Mutex
	refs int
}

// acquireConversation blocks until this turn holds the conversation's lock.
func (o *ChatOrchestrator) acquireConversation(conversationID uint) *convLock {
	o.mu.Lock()
	lock, ok := o.convLocks[conversationID]
	if !ok {
		lock = &convLock{}
		o.convLocks[conversationID] = lock
	}
	lock.refs++
	o.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// releaseConversation unlocks and evicts the map entry once no turn holds or
// waits on it.
func (o *ChatOrchestrator) releaseConversation(conversationID uint, lock *convLock) {
	lock.mu.Unlock()

	o.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(o.convLocks, conversationID)
	}
	o.mu.Unlock()
}
