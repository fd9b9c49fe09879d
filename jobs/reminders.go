// jobs/reminders.go
package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/FawazNazmo/MechLink/entity"
	"github.com/FawazNazmo/MechLink/pkg/mailer"
	"github.com/FawazNazmo/MechLink/repository"

	"github.com/robfig/cron/v3"
)

// ReminderJob emails owners whose next service is coming up.
type ReminderJob struct {
	RecordRepo *repository.ServiceRecordRepository
	AlertRepo  *repository.AlertSettingRepository
	Mail       *mailer.Mailer
}

func NewReminderJob(
	recordRepo *repository.ServiceRecordRepository,
	alertRepo *repository.AlertSettingRepository,
	mail *mailer.Mailer,
) *ReminderJob {
	return &ReminderJob{RecordRepo: recordRepo, AlertRepo: alertRepo, Mail: mail}
}

// Start schedules the daily 09:00 sweep. The returned cron can be stopped
// on shutdown.
func (j *ReminderJob) Start() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", func() { j.RunOnce(time.Now()) }); err != nil {
		log.Printf("reminder cron setup failed: %v", err)
		return c
	}
	c.Start()
	log.Println("⏰ Reminder job scheduled (daily 09:00)")
	return c
}

// RunOnce processes every due reminder. A reminder is marked sent even when
// the user has reminders disabled or no address on file; otherwise it would
// come due again every day forever.
func (j *ReminderJob) RunOnce(now time.Time) {
	due, err := j.RecordRepo.DueReminders(now, 200)
	if err != nil {
		log.Printf("reminder sweep failed: %v", err)
		return
	}

	for _, rec := range due {
		to, enabled := j.resolveRecipient(&rec)
		if enabled && to != "" {
			j.Mail.SendAsync(to, "MechLink: Service Reminder", reminderBody(&rec))
		}
		if err := j.RecordRepo.MarkReminderSent(rec.ID); err != nil {
			log.Printf("mark reminder sent failed for record %d: %v", rec.ID, err)
		}
	}
	if len(due) > 0 {
		log.Printf("reminder sweep: %d processed", len(due))
	}
}

// resolveRecipient applies the alert preferences: an absent row means
// enabled, a stored override beats the login email.
func (j *ReminderJob) resolveRecipient(rec *entity.ServiceRecord) (string, bool) {
	to := rec.User.Email
	setting, err := j.AlertRepo.FindByUser(rec.UserID)
	if err != nil {
		log.Printf("alert setting lookup failed for user %d: %v", rec.UserID, err)
		return to, true
	}
	if setting == nil {
		return to, true
	}
	if setting.Email != "" {
		to = setting.Email
	}
	return to, setting.EmailReminders
}

func reminderBody(rec *entity.ServiceRecord) string {
	when := "soon"
	if rec.NextServiceDate != nil {
		when = rec.NextServiceDate.Format("02 Jan 2006")
	}
	return fmt.Sprintf(
		"Hi %s,\n\nYour %s is due on %s.\n\nBook a mechanic on MechLink to stay on top of it.\n\nMechLink",
		rec.User.FirstName, rec.Service, when,
	)
}
