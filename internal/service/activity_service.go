package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/adventurestreak/territory-backend-go/internal/feed"
	"github.com/adventurestreak/territory-backend-go/internal/models"
	"github.com/adventurestreak/territory-backend-go/internal/repository"
)

const systemSenderName = "Adventure Streak"

// ErrActivityNotFound is returned when the activity id is unknown
var ErrActivityNotFound = errors.New("activity not found")

// ErrAlreadyProcessed is returned when the activity is not pending
var ErrAlreadyProcessed = errors.New("activity already processed")

// ActivityService owns the persistence and notification side of activity
// processing: it feeds the conquest engine and commits everything the
// engine decided
type ActivityService struct {
	activities    *repository.ActivityRepository
	routes        *repository.RouteRepository
	users         *repository.UserRepository
	notifications *repository.NotificationRepository
	reactions     *repository.ReactionRepository
	feedRepo      *repository.FeedRepository
	conquest      *ConquestService
	hub           *feed.Hub
}

// NewActivityService wires the activity service
func NewActivityService(
	activities *repository.ActivityRepository,
	routes *repository.RouteRepository,
	users *repository.UserRepository,
	notifications *repository.NotificationRepository,
	reactions *repository.ReactionRepository,
	feedRepo *repository.FeedRepository,
	conquest *ConquestService,
	hub *feed.Hub,
) *ActivityService {
	return &ActivityService{
		activities:    activities,
		routes:        routes,
		users:         users,
		notifications: notifications,
		reactions:     reactions,
		feedRepo:      feedRepo,
		conquest:      conquest,
		hub:           hub,
	}
}

// Ingest stores a validated activity and its route in pending state
func (s *ActivityService) Ingest(activity *models.Activity, points []models.RoutePoint) error {
	activity.ProcessingStatus = models.StatusPending
	if err := s.activities.Create(activity); err != nil {
		return err
	}
	if err := s.routes.Save(activity.ID, points); err != nil {
		return err
	}
	log.Printf("[Activity] Ingested %s (%s, %d route points)", activity.ID, activity.Type, len(points))
	return nil
}

// GetActivity retrieves an activity with its results, nil when absent
func (s *ActivityService) GetActivity(activityID string) (*models.Activity, error) {
	return s.activities.Get(activityID)
}

// GetActivityTerritories retrieves the cells an activity rasterized
func (s *ActivityService) GetActivityTerritories(activityID string) ([]models.Cell, error) {
	return s.activities.GetTerritories(activityID)
}

// React stores reactorID's reaction to an activity and notifies the
// activity's author. Reacting again replaces the previous reaction.
// A self-reaction is stored but produces no notification.
func (s *ActivityService) React(activityID, reactorID, reactionType string) error {
	activity, err := s.activities.Get(activityID)
	if err != nil {
		return err
	}
	if activity == nil {
		return ErrActivityNotFound
	}

	if err := s.reactions.Upsert(&models.Reaction{
		ActivityID:   activityID,
		UserID:       reactorID,
		ReactionType: reactionType,
	}); err != nil {
		return err
	}

	if activity.UserID == reactorID {
		return nil
	}

	sender, avatar := s.senderIdentity(reactorID)
	s.insertNotification(&models.Notification{
		RecipientID:     activity.UserID,
		Type:            models.NotificationReaction,
		SenderID:        reactorID,
		SenderName:      sender,
		SenderAvatarURL: avatar,
		ActivityID:      activityID,
		ReactionType:    reactionType,
	})
	return nil
}

// GetReactions retrieves all reactions to an activity
func (s *ActivityService) GetReactions(activityID string) ([]models.Reaction, error) {
	return s.reactions.ListForActivity(activityID)
}

// Process runs the conquest engine for a pending activity and commits the
// results. A failed run leaves the activity pending; reprocessing is safe
// because the engine reclassifies its own cells as conquests.
func (s *ActivityService) Process(ctx context.Context, activityID string) (*ProcessResult, error) {
	activity, err := s.activities.Get(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if activity.ProcessingStatus != models.StatusPending {
		return nil, ErrAlreadyProcessed
	}

	points, err := s.routes.Load(activityID)
	if err != nil {
		return nil, err
	}

	result, err := s.conquest.Process(ctx, *activity, points)
	if err != nil {
		return nil, err
	}

	if err := s.commit(activity, result); err != nil {
		return nil, err
	}

	s.notify(activity, result)
	s.publishFeedEvent(activity, result)

	log.Printf("[Activity] Processed %s: %d cells, +%d XP (new=%d defended=%d recaptured=%d stolen=%d)",
		activityID, len(result.Cells), result.Breakdown.Total,
		result.Stats.NewCellsCount, result.Stats.DefendedCellsCount,
		result.Stats.RecapturedCellsCount, result.Stats.StolenCellsCount)
	return result, nil
}

func (s *ActivityService) commit(activity *models.Activity, result *ProcessResult) error {
	if err := s.activities.SaveTerritories(activity.ID, result.Cells); err != nil {
		return err
	}
	if err := s.activities.SaveResults(activity.ID, result.Breakdown, result.Missions, result.Stats, len(result.Cells)); err != nil {
		return err
	}

	userCtx := result.Context
	newWeekDistance := userCtx.CurrentWeekDistanceKm + activity.DistanceKm()
	bestWeekly := userCtx.BestWeeklyDistanceKm
	if newWeekDistance > bestWeekly {
		bestWeekly = newWeekDistance
	}
	if err := s.users.SaveProgress(
		activity.UserID,
		result.NewTotalXP, result.NewLevel,
		newWeekDistance, bestWeekly,
		userCtx.TodayBaseXPEarned+result.Breakdown.XPBase,
		activity.EndDate,
	); err != nil {
		return err
	}
	return nil
}

// notify builds the notification rows processing produces. Failures here
// are logged, not fatal: the territory pass is already committed.
func (s *ActivityService) notify(activity *models.Activity, result *ProcessResult) {
	sender, avatar := s.senderIdentity(activity.UserID)

	if result.NewLevel > result.Context.Level {
		s.insertNotification(&models.Notification{
			RecipientID: activity.UserID,
			Type:        models.NotificationAchievement,
			BadgeID:     fmt.Sprintf("level_up_%d", result.NewLevel),
			SenderID:    "system",
			SenderName:  systemSenderName,
		})
	}

	totalStolen := 0
	for victimID, count := range result.Victims {
		totalStolen += count
		if victimID == activity.UserID {
			continue
		}
		s.insertNotification(&models.Notification{
			RecipientID:     victimID,
			Type:            models.NotificationTerritoryStolen,
			SenderID:        activity.UserID,
			SenderName:      sender,
			SenderAvatarURL: avatar,
			ActivityID:      activity.ID,
			Message:         fmt.Sprintf("Stole %d territories!", count),
		})
	}

	if totalStolen > 0 {
		s.insertNotification(&models.Notification{
			RecipientID: activity.UserID,
			Type:        models.NotificationStealSuccess,
			SenderID:    "system",
			SenderName:  systemSenderName,
			ActivityID:  activity.ID,
			Message:     fmt.Sprintf("¡Has robado %d territorios!", totalStolen),
		})
	}

	if result.Stats.NewCellsCount > 0 {
		s.insertNotification(&models.Notification{
			RecipientID:   activity.UserID,
			Type:          models.NotificationTerritoryWon,
			SenderID:      "system",
			SenderName:    systemSenderName,
			ActivityID:    activity.ID,
			LocationLabel: activity.LocationLabel,
		})
	}

	s.insertNotification(&models.Notification{
		RecipientID: activity.UserID,
		Type:        models.NotificationWorkoutProcessed,
		SenderID:    "system",
		SenderName:  systemSenderName,
		ActivityID:  activity.ID,
	})
}

func (s *ActivityService) insertNotification(n *models.Notification) {
	if err := s.notifications.Insert(n); err != nil {
		log.Printf("[Activity] Failed to insert %s notification: %v", n.Type, err)
	}
}

func (s *ActivityService) senderIdentity(userID string) (name, avatar string) {
	name = "Adventurer"
	user, err := s.users.Get(userID)
	if err != nil {
		log.Printf("[Activity] Failed to load sender profile: %v", err)
		return name, ""
	}
	if user != nil {
		if user.DisplayName != "" {
			name = user.DisplayName
		}
		avatar = user.PhotoURL
	}
	return name, avatar
}

func (s *ActivityService) publishFeedEvent(activity *models.Activity, result *ProcessResult) {
	sender, avatar := s.senderIdentity(activity.UserID)

	eventType := models.FeedDistanceRecord
	switch {
	case result.Stats.RecapturedCellsCount > 0:
		eventType = models.FeedTerritoryRecaptured
	case result.Stats.NewCellsCount > 0, result.Stats.DefendedCellsCount > 0:
		eventType = models.FeedTerritoryConquered
	}

	title := activity.LocationLabel
	var rarity models.MissionRarity
	var missionNames []string
	for _, m := range result.Missions {
		missionNames = append(missionNames, m.Name)
	}
	if len(result.Missions) > 0 {
		title = result.Missions[0].Name
		rarity = result.Missions[0].Rarity
	}
	if title == "" {
		title = "Actividad completada"
	}

	var highlights []string
	if result.Stats.NewCellsCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d territorios conquistados", result.Stats.NewCellsCount))
	}
	if result.Stats.DefendedCellsCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d territorios defendidos", result.Stats.DefendedCellsCount))
	}
	if result.Stats.StolenCellsCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d territorios robados", result.Stats.StolenCellsCount))
	}
	if result.Stats.RecapturedCellsCount > 0 {
		highlights = append(highlights, fmt.Sprintf("%d territorios recuperados", result.Stats.RecapturedCellsCount))
	}

	var subtitles []string
	if len(missionNames) > 0 {
		subtitles = append(subtitles, "Misiones: "+strings.Join(missionNames, " · "))
	}
	if len(highlights) > 0 {
		subtitles = append(subtitles, strings.Join(highlights, " · "))
	}

	event := &models.FeedEvent{
		ID:              fmt.Sprintf("activity-%s-summary", activity.ID),
		Type:            eventType,
		Date:            activity.EndDate,
		ActivityID:      activity.ID,
		Title:           title,
		Subtitle:        strings.Join(subtitles, " · "),
		XPEarned:        result.Breakdown.Total,
		UserID:          activity.UserID,
		RelatedUserName: sender,
		UserLevel:       result.NewLevel,
		UserAvatarURL:   avatar,
		Rarity:          rarity,
		IsPersonal:      true,
		ActivityData: models.FeedActivityData{
			ActivityType:         activity.Type,
			DistanceMeters:       activity.DistanceMeters,
			DurationSeconds:      activity.DurationSeconds,
			XPEarned:             result.Breakdown.Total,
			NewZonesCount:        result.Stats.NewCellsCount,
			DefendedZonesCount:   result.Stats.DefendedCellsCount,
			RecapturedZonesCount: result.Stats.RecapturedCellsCount,
			Calories:             activity.Calories,
			AverageHeartRate:     activity.AverageHeartRate,
			LocationLabel:        activity.LocationLabel,
		},
	}

	if err := s.feedRepo.Insert(event); err != nil {
		log.Printf("[Activity] Failed to insert feed event: %v", err)
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(event)
	}
}
