package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leafclutch/leafclutch-backend/dao/model"
)

func TestValidateOpportunityDetails(t *testing.T) {
	job := &JobDetailReq{}
	internship := &InternshipDetailReq{}

	tests := []struct {
		name       string
		typ        model.OpportunityType
		job        *JobDetailReq
		internship *InternshipDetailReq
		wantErr    string
	}{
		{name: "job with job details", typ: model.OpportunityJob, job: job},
		{name: "job without details", typ: model.OpportunityJob},
		{name: "internship with internship details", typ: model.OpportunityInternship, internship: internship},
		{name: "internship without details", typ: model.OpportunityInternship},
		{
			name:       "job with internship details",
			typ:        model.OpportunityJob,
			internship: internship,
			wantErr:    "internship_details not allowed for JOB opportunities",
		},
		{
			name:    "internship with job details",
			typ:     model.OpportunityInternship,
			job:     job,
			wantErr: "job_details not allowed for INTERNSHIP opportunities",
		},
		{
			name:    "unknown type",
			typ:     model.OpportunityType("FREELANCE"),
			wantErr: "Invalid opportunity type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOpportunityDetails(tt.typ, tt.job, tt.internship)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
