package application

import (
	"context"

	"github.com/example/studio-scheduler/internal/matching"
)

// buildDayIndex loads the availability and assignment snapshot for one day
// and wraps it in a matching index.
func buildDayIndex(ctx context.Context, availability AvailabilityRepository, assignments AssignmentRepository, date string) (*matching.Index, error) {
	availabilityRecords, err := availability.ListAvailabilityByDate(ctx, date)
	if err != nil {
		return nil, mapRepoError(err)
	}
	assignmentRecords, err := assignments.ListAssignmentsByDate(ctx, date)
	if err != nil {
		return nil, mapRepoError(err)
	}

	snap := matching.Snapshot{}
	for _, record := range availabilityRecords {
		snap.Availability = append(snap.Availability, matching.AvailabilityRecord{
			ID:        record.ID,
			HostID:    record.HostID,
			HostName:  record.HostName,
			Date:      record.Date,
			TimeSlots: record.TimeSlots,
			CreatedAt: record.CreatedAt,
		})
	}
	for _, record := range assignmentRecords {
		snap.Assignments = append(snap.Assignments, matching.AssignmentRecord{
			ID:        record.ID,
			RoomID:    record.RoomID,
			RoomName:  record.RoomName,
			Date:      record.Date,
			BrandID:   record.BrandID,
			BrandName: record.BrandName,
			HostID:    record.HostID,
			HostName:  record.HostName,
			TimeSlots: record.TimeSlots,
			CreatedAt: record.CreatedAt,
		})
	}

	return matching.NewIndex(date, snap), nil
}

// hostProfileOf converts an account into the profile the matching core
// filters over.
func hostProfileOf(user User) matching.HostProfile {
	return matching.HostProfile{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Affinity: matching.AffinityFromTags(user.BrandTags),
	}
}
