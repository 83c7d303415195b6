package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

// Contributor submits contributions with the current session.
// *orchestrator.Orchestrator satisfies it.
type Contributor interface {
	SubmitLabeledTranslation(ctx context.Context, entries []entities.LabeledTranslation) error
	SubmitAudioTranslation(ctx context.Context, entries []entities.AudioTranslation) error
}

var contributionRetention = &backlite.Retention{
	Duration:   24 * time.Hour,
	OnlyFailed: false,
	Data:       &backlite.RetainData{OnlyFailed: true},
}

// SubmitTranslationsTask submits labeled translations in the background.
type SubmitTranslationsTask struct {
	Entries []entities.LabeledTranslation `json:"entries"`
}

func (t SubmitTranslationsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "submit_translations",
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention:   contributionRetention,
	}
}

// SubmitAudioTask uploads pronunciation recordings in the background.
type SubmitAudioTask struct {
	Entries []entities.AudioTranslation `json:"entries"`
}

func (t SubmitAudioTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "submit_audio",
		MaxAttempts: 5,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention:   contributionRetention,
	}
}

// SubmitTranslationsProcessor submits queued translations. A submission
// that can no longer be authorised is dropped instead of retried.
func SubmitTranslationsProcessor(contributor Contributor) backlite.QueueProcessor[SubmitTranslationsTask] {
	return func(ctx context.Context, task SubmitTranslationsTask) error {
		err := contributor.SubmitLabeledTranslation(ctx, task.Entries)
		if dropped(err) {
			log.Printf("[TASK] Dropped %d queued translations: %v", len(task.Entries), err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("submit %d translations: %w", len(task.Entries), err)
		}
		log.Printf("[TASK] Submitted %d translations", len(task.Entries))
		return nil
	}
}

func SubmitAudioProcessor(contributor Contributor) backlite.QueueProcessor[SubmitAudioTask] {
	return func(ctx context.Context, task SubmitAudioTask) error {
		err := contributor.SubmitAudioTranslation(ctx, task.Entries)
		if dropped(err) {
			log.Printf("[TASK] Dropped %d queued recordings: %v", len(task.Entries), err)
			return nil
		}
		if err != nil {
			return fmt.Errorf("submit %d recordings: %w", len(task.Entries), err)
		}
		log.Printf("[TASK] Submitted %d recordings", len(task.Entries))
		return nil
	}
}

func dropped(err error) bool {
	return errors.Is(err, orchestrator.ErrSessionExpired) || errors.Is(err, orchestrator.ErrNotAuthenticated)
}

func NewSubmitTranslationsQueue(contributor Contributor) backlite.Queue {
	return backlite.NewQueue(SubmitTranslationsProcessor(contributor))
}

func NewSubmitAudioQueue(contributor Contributor) backlite.Queue {
	return backlite.NewQueue(SubmitAudioProcessor(contributor))
}

// Outbox enqueues contributions for background submission.
type Outbox struct {
	client *Client
}

// NewOutbox registers the contribution queues on client.
func NewOutbox(client *Client, contributor Contributor) *Outbox {
	client.Register(NewSubmitTranslationsQueue(contributor), NewSubmitAudioQueue(contributor))
	return &Outbox{client: client}
}

// QueueTranslations enqueues entries and returns the task id.
func (o *Outbox) QueueTranslations(entries []entities.LabeledTranslation) (string, error) {
	if len(entries) == 0 {
		return "", orchestrator.ErrEmptyContribution
	}
	return o.save(SubmitTranslationsTask{Entries: entries})
}

func (o *Outbox) QueueAudio(entries []entities.AudioTranslation) (string, error) {
	if len(entries) == 0 {
		return "", orchestrator.ErrEmptyContribution
	}
	return o.save(SubmitAudioTask{Entries: entries})
}

// Status reports the state of a queued contribution.
func (o *Outbox) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return o.client.Status(ctx, taskID)
}

func (o *Outbox) save(task backlite.Task) (string, error) {
	ids, err := o.client.Add(task).Save()
	if err != nil {
		return "", fmt.Errorf("queue contribution: %w", err)
	}
	if len(ids) == 0 {
		return "", errors.New("queue contribution: no task id returned")
	}
	return ids[0], nil
}
