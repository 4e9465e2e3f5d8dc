package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"tubemap/internal/catalog"
	"tubemap/internal/config"
	"tubemap/internal/extract"
	"tubemap/internal/filter"
	"tubemap/internal/lexicon"
	"tubemap/internal/logging"
	"tubemap/internal/match"
	"tubemap/internal/notifications"
	"tubemap/internal/seed"
	"tubemap/internal/services"
	"tubemap/internal/services/youtube"
)

// Skip reason codes recorded in the processed-video ledger.
const (
	ReasonChannelNotInList    = "CHANNEL_NOT_IN_LIST"
	ReasonDescNoStoreOrRegion = "DESC_NO_STORE_OR_REGION"
)

// Stage names used for log correlation.
const (
	stageIdempotency   = "idempotency_check"
	stageChannelFilter = "channel_filter"
	stageTextGate      = "text_gate"
	stagePlaceMatch    = "place_match"
	stageImageCheck    = "image_check"
	stagePersist       = "persist"
)

// VideoProvider is the metadata surface the orchestrator consumes.
type VideoProvider interface {
	Search(ctx context.Context, query string, maxResults int, orderHint string) ([]string, error)
	GetDetails(ctx context.Context, videoID string) (*youtube.Details, error)
	GetTopComment(ctx context.Context, videoID string) (*youtube.Comment, error)
}

// Outcome reports how one video moved through the pipeline.
type Outcome struct {
	VideoID   string
	Status    catalog.ProcessedStatus
	Reason    string
	Duplicate bool
	Sink      catalog.Sink
	PlaceName string
}

// RunSummary aggregates one DiscoverAndProcess batch.
type RunSummary struct {
	RunID      string
	Query      string
	Candidates int
	Persisted  int
	Skipped    int
	Failed     int
	Duplicates int
	Duration   time.Duration
}

// Deps carries the orchestrator's collaborators. Videos, Matcher, Gate,
// Gateway, and Lexicon are required; the rest fall back to usable defaults.
type Deps struct {
	Videos     VideoProvider
	Matcher    *match.Matcher
	Gate       *filter.Filter
	Gateway    *catalog.Gateway
	Lexicon    *lexicon.Lexicon
	Seeds      *seed.Generator
	Notifier   notifications.Service
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Orchestrator runs the ingestion pipeline over single videos and batches.
type Orchestrator struct {
	cfg      *config.Config
	videos   VideoProvider
	matcher  *match.Matcher
	gate     *filter.Filter
	gateway  *catalog.Gateway
	lex      *lexicon.Lexicon
	seeds    *seed.Generator
	notifier notifications.Service
	client   *http.Client
	logger   *slog.Logger
	delay    time.Duration
}

// New wires an Orchestrator from configuration and its collaborators.
func New(cfg *config.Config, deps Deps) *Orchestrator {
	logger := logging.NewComponentLogger(deps.Logger, "pipeline")
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	client := deps.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: time.Duration(cfg.Pipeline.ThumbTimeout) * time.Second}
	}
	seeds := deps.Seeds
	if seeds == nil {
		seeds = seed.New(deps.Lexicon, rand.New(rand.NewSource(time.Now().UnixNano())), seed.DefaultWeights())
	}
	return &Orchestrator{
		cfg:      cfg,
		videos:   deps.Videos,
		matcher:  deps.Matcher,
		gate:     deps.Gate,
		gateway:  deps.Gateway,
		lex:      deps.Lexicon,
		seeds:    seeds,
		notifier: notifier,
		client:   client,
		logger:   logger,
		delay:    time.Duration(cfg.Pipeline.DelaySeconds) * time.Second,
	}
}

// ProcessSingleVideo runs one video through every stage. Videos already
// marked processed terminate immediately without provider calls. Gate
// rejections and hard failures are recorded in the ledger, never returned as
// errors; the error return covers only ledger writes themselves.
func (o *Orchestrator) ProcessSingleVideo(ctx context.Context, videoID, mediaLabel string) (Outcome, error) {
	return o.process(ctx, videoID, mediaLabel, false)
}

func (o *Orchestrator) process(ctx context.Context, videoID, mediaLabel string, preGate bool) (Outcome, error) {
	ctx = services.WithVideoID(ctx, videoID)
	logger := logging.WithContext(ctx, o.logger)

	idemCtx := services.WithStage(ctx, stageIdempotency)
	record, err := o.gateway.GetProcessed(idemCtx, videoID)
	if err != nil {
		return Outcome{VideoID: videoID}, fmt.Errorf("read processed ledger: %w", err)
	}
	if record != nil && record.Status == catalog.StatusProcessed {
		logging.WithContext(idemCtx, o.logger).Info("video already processed, skipping")
		return Outcome{VideoID: videoID, Status: catalog.StatusProcessed, Duplicate: true}, nil
	}

	channelCtx := services.WithStage(ctx, stageChannelFilter)
	details, err := o.videos.GetDetails(channelCtx, videoID)
	if err != nil {
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusFailed,
			Reason:  fmt.Sprintf("fetch video details: %v", err),
		})
	}

	if preGate {
		score := o.gate.Evaluate(details.Title, details.Description)
		if !score.Valid {
			logger.Info("video rejected by candidate filter",
				logging.String(logging.FieldReason, score.Reason),
				logging.Int("score", score.Score))
			return o.finish(ctx, logger, Outcome{
				VideoID: videoID,
				Status:  catalog.StatusSkipped,
				Reason:  score.Reason,
			})
		}
	}

	if !o.lex.AllowsChannel(details.ChannelTitle) {
		logging.WithContext(channelCtx, o.logger).Info("channel not in allow-list",
			logging.String("channel", details.ChannelTitle))
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusSkipped,
			Reason:  ReasonChannelNotInList,
		})
	}

	desc := extract.Parse(details.Description)
	if !desc.Pass {
		logging.WithContext(services.WithStage(ctx, stageTextGate), o.logger).
			Info("description missing store name or region")
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusSkipped,
			Reason:  ReasonDescNoStoreOrRegion,
		})
	}
	cleanedName := extract.CleanSearchTerm(desc.StoreName)
	cleanedRegion := extract.CleanSearchTerm(desc.RegionHint)

	matchCtx := services.WithStage(ctx, stagePlaceMatch)
	result, err := o.matcher.Search(matchCtx, cleanedName, cleanedRegion, "")
	if err != nil {
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusFailed,
			Reason:  fmt.Sprintf("place search: %v", err),
		})
	}
	if result == nil {
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusFailed,
			Reason:  fmt.Sprintf("no place candidates for %q in %q", cleanedName, cleanedRegion),
		})
	}
	if !match.VerifyAddressInText(result.Place, details.Description) {
		// Supplementary cross-check only; flagged matches still persist.
		logging.WithContext(matchCtx, o.logger).Warn("matched address not confirmed by description",
			logging.String("place_name", result.Place.Name))
	}

	imageCtx := services.WithStage(ctx, stageImageCheck)
	imageState, imageType := o.checkThumbnail(imageCtx, details.ThumbnailURL, logging.WithContext(imageCtx, o.logger))

	entity := &catalog.PlaceEntity{
		KakaoPlaceID: result.Place.ID,
		Name:         desc.StoreName,
		NameOfficial: result.Place.Name,
		Category:     result.Place.CategoryPath,
		Address:      result.Place.Address,
		RoadAddress:  result.Place.RoadAddress,
		Lat:          result.Place.Lat,
		Lng:          result.Place.Lng,
		Phone:        result.Place.Phone,
		ChannelTitle: details.ChannelTitle,
		MediaLabel:   strings.TrimSpace(mediaLabel),
		VideoID:      details.VideoID,
		VideoURL:     "https://www.youtube.com/watch?v=" + details.VideoID,
		PublishedAt:  details.PublishedAt,
		Description:  details.Description,
		ImageState:   imageState,
		ImageURL:     details.ThumbnailURL,
		ImageType:    imageType,
	}
	if comment := o.fetchTopComment(ctx, videoID, logger); comment != nil {
		entity.BestComment = comment.Text
		entity.BestCommentLikes = comment.Likes
	}

	persistCtx := services.WithStage(ctx, stagePersist)
	sink, err := o.gateway.UpsertPlace(persistCtx, entity)
	if err != nil {
		return o.finish(ctx, logger, Outcome{
			VideoID: videoID,
			Status:  catalog.StatusFailed,
			Reason:  fmt.Sprintf("persist place: %v", err),
		})
	}

	logging.WithContext(persistCtx, o.logger).Info("place persisted",
		logging.String("place_id", entity.KakaoPlaceID),
		logging.String("place_name", entity.NameOfficial),
		logging.Int("match_score", result.Score),
		logging.String("match_status", string(result.Status)),
		logging.String("sink", string(sink)))

	return o.finish(ctx, logger, Outcome{
		VideoID:   videoID,
		Status:    catalog.StatusProcessed,
		Sink:      sink,
		PlaceName: entity.NameOfficial,
	})
}

// finish writes the single ledger entry every attempt leaves behind.
func (o *Orchestrator) finish(ctx context.Context, logger *slog.Logger, outcome Outcome) (Outcome, error) {
	if err := o.gateway.RecordProcessed(ctx, outcome.VideoID, outcome.Status, outcome.Reason); err != nil {
		return outcome, fmt.Errorf("record processed ledger: %w", err)
	}
	if outcome.Status == catalog.StatusFailed {
		logger.Error("video failed", logging.String(logging.FieldReason, outcome.Reason))
	}
	return outcome, nil
}

// checkThumbnail issues a HEAD request against the thumbnail URL. Anything
// other than a 200 leaves the image pending; an unreachable thumbnail is not
// a pipeline failure.
func (o *Orchestrator) checkThumbnail(ctx context.Context, url string, logger *slog.Logger) (catalog.ImageState, string) {
	if strings.TrimSpace(url) == "" {
		return catalog.ImagePending, ""
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return catalog.ImagePending, ""
	}
	resp, err := o.client.Do(req)
	if err != nil {
		logger.Debug("thumbnail unreachable", logging.Error(err))
		return catalog.ImagePending, ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return catalog.ImagePending, ""
	}
	return catalog.ImageApproved, resp.Header.Get("Content-Type")
}

// fetchTopComment is best effort; a missing or failed comment lookup never
// blocks persistence.
func (o *Orchestrator) fetchTopComment(ctx context.Context, videoID string, logger *slog.Logger) *youtube.Comment {
	timeout := time.Duration(o.cfg.Pipeline.CommentTimeout) * time.Second
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	comment, err := o.videos.GetTopComment(ctx, videoID)
	if err != nil {
		logger.Debug("top comment unavailable", logging.Error(err))
		return nil
	}
	return comment
}

// DiscoverAndProcess searches for candidate videos and runs each through the
// pipeline in sequence. When targetQuery is empty a seed query is generated
// from the lexicon pools. A courtesy delay separates videos.
func (o *Orchestrator) DiscoverAndProcess(ctx context.Context, targetQuery string) (RunSummary, error) {
	started := time.Now()
	runID := ulid.Make().String()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, o.logger)

	query := strings.TrimSpace(targetQuery)
	label := query
	if query == "" {
		s := o.seeds.Generate()
		query = s.Query
		label = s.Source
		logger.Info("seed query generated",
			logging.String("query", query),
			logging.String("seed_type", string(s.Type)))
	}

	summary := RunSummary{RunID: runID, Query: query}

	ids, err := o.videos.Search(ctx, query, o.cfg.YouTube.MaxResults, "relevance")
	if err != nil {
		return summary, fmt.Errorf("search videos: %w", err)
	}
	summary.Candidates = len(ids)
	logger.Info("run started",
		logging.String("query", query),
		logging.Int("candidates", len(ids)))
	if err := o.notifier.NotifyRunStarted(ctx, query, len(ids)); err != nil {
		logger.Debug("run-started notification failed", logging.Error(err))
	}

	primaryWasUp := o.gateway.PrimaryEnabled()
	for i, videoID := range ids {
		if i > 0 {
			if err := o.pause(ctx); err != nil {
				return summary, err
			}
		}

		videoCtx := services.WithRequestID(ctx, uuid.NewString())
		outcome, err := o.process(videoCtx, videoID, label, true)
		if err != nil {
			return summary, err
		}
		switch {
		case outcome.Duplicate:
			summary.Duplicates++
		case outcome.Status == catalog.StatusProcessed:
			summary.Persisted++
			if err := o.notifier.NotifyPlacePersisted(ctx, outcome.PlaceName, string(outcome.Sink)); err != nil {
				logger.Debug("place notification failed", logging.Error(err))
			}
		case outcome.Status == catalog.StatusSkipped:
			summary.Skipped++
		case outcome.Status == catalog.StatusFailed:
			summary.Failed++
			if err := o.notifier.NotifyError(ctx, fmt.Errorf("%s", outcome.Reason), "video "+videoID); err != nil {
				logger.Debug("error notification failed", logging.Error(err))
			}
		}

		if primaryWasUp && !o.gateway.PrimaryEnabled() {
			primaryWasUp = false
			if err := o.notifier.NotifyPrimaryDegraded(ctx, o.cfg.FallbackPath()); err != nil {
				logger.Debug("degraded notification failed", logging.Error(err))
			}
		}
	}

	summary.Duration = time.Since(started)
	logger.Info("run completed",
		logging.Int("persisted", summary.Persisted),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("duplicates", summary.Duplicates),
		logging.Duration("duration", summary.Duration))
	if err := o.notifier.NotifyRunCompleted(ctx, summary.Persisted, summary.Skipped, summary.Failed, summary.Duration); err != nil {
		logger.Debug("run-completed notification failed", logging.Error(err))
	}
	return summary, nil
}

func (o *Orchestrator) pause(ctx context.Context) error {
	if o.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(o.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
