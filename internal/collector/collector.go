// Package collector turns a form state into the PlanData the report is
// rendered from.
package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/bfmp/internal/domain"
	"github.com/alexanderramin/bfmp/internal/form"
	"github.com/alexanderramin/bfmp/internal/logging"
	"github.com/alexanderramin/bfmp/internal/presence"
)

// ErrAborted is returned when the proceed policy declines to continue with
// missing required fields. No PlanData accompanies it.
var ErrAborted = errors.New("plan generation aborted: required fields are missing")

// Snapshot reads every declared field once and assembles PlanData. It has no
// side effects; calling it twice on the same state yields equal results.
func Snapshot(acc form.Accessor) domain.PlanData {
	return domain.PlanData{
		Vessel: domain.VesselParticulars{
			Name:             acc.Text(form.FieldVesselName),
			IMO:              acc.Text(form.FieldIMONumber),
			ConstructionDate: acc.Text(form.FieldConstructionDate),
			Type:             acc.Text(form.FieldVesselType),
			GrossTonnage:     acc.Text(form.FieldGrossTonnage),
			Beam:             acc.Text(form.FieldBeam),
			Length:           acc.Text(form.FieldLength),
			MaxDraft:         acc.Text(form.FieldMaxDraft),
			MinDraft:         acc.Text(form.FieldMinDraft),
			Flag:             acc.Text(form.FieldFlag),
		},
		Owner: domain.OwnerOperator{
			OwnerName:       acc.Text(form.FieldOwnerName),
			OwnerAddress:    acc.Text(form.FieldOwnerAddress),
			OperatorName:    acc.Text(form.FieldOperatorName),
			OperatorContact: acc.Text(form.FieldOperatorContact),
			OperatorEmail:   acc.Text(form.FieldOperatorEmail),
		},
		Revision: domain.RevisionRecord{
			LastDrydock:         acc.Text(form.FieldLastDrydock),
			NextDrydock:         acc.Text(form.FieldNextDrydock),
			Number:              acc.Text(form.FieldRevisionNumber),
			Date:                acc.Text(form.FieldRevisionDate),
			ResponsiblePerson:   acc.Text(form.FieldResponsiblePerson),
			ResponsiblePosition: acc.Text(form.FieldResponsiblePosition),
		},
		Operating: domain.OperatingProfile{
			Speed:           acc.Text(form.FieldOperatingSpeed),
			InServicePeriod: acc.Text(form.FieldInServicePeriod),
			TradingRoutes:   acc.Text(form.FieldTradingRoutes),
			OperatingArea:   acc.Text(form.FieldOperatingArea),
			ClimateZones:    acc.Text(form.FieldClimateZones),
			AFSSuitability:  acc.Text(form.FieldAFSSuitability),
		},
		Niche: domain.NicheAreas{
			Description: acc.Text(form.FieldNicheAreaDescription),
			Diagrams:    acc.Images(form.FieldDiagramFiles),
		},
		Coatings:      coatings(acc),
		GrowthSystems: growthSystems(acc),
		Installation:  acc.Text(form.FieldAFSInstallation),
		Certification: domain.Certification{
			IAFSNumber:        acc.Text(form.FieldIAFSNumber),
			IAFSIssueDate:     acc.Text(form.FieldIAFSIssueDate),
			IAFSFile:          acc.Image(form.FieldIAFSFile),
			ClassSociety:      acc.Text(form.FieldClassSociety),
			ApprovalAuthority: acc.Text(form.FieldApprovalAuthority),
			ApprovalDate:      acc.Text(form.FieldApprovalDate),
		},
		Maintenance: domain.Maintenance{
			InspectionSchedule: acc.Text(form.FieldInspectionSchedule),
			CleaningSchedule:   acc.Text(form.FieldCleaningSchedule),
		},
		Risk: domain.RiskManagement{
			Parameters:         acc.Text(form.FieldRiskParameters),
			DeviationLimits:    acc.Text(form.FieldDeviationLimits),
			ContingencyActions: acc.Text(form.FieldContingencyActions),
			LongTermActions:    acc.Text(form.FieldLongTermActions),
		},
		Procedures: domain.Procedures{
			WasteManagement:  acc.Text(form.FieldWasteManagement),
			SafetyProcedures: acc.Text(form.FieldSafetyProcedures),
		},
		CrewTraining: acc.Text(form.FieldCrewTraining),
		Communications: domain.Communications{
			ReportingContact:    acc.Text(form.FieldReportingContact),
			ReportingProcedures: acc.Text(form.FieldReportingProcedures),
		},
		References: acc.Text(form.FieldAdditionalReferences),
		Document: domain.DocumentMeta{
			Title:                 acc.Text(form.FieldPlanTitle),
			Number:                acc.Text(form.FieldDocumentNumber),
			Revision:              acc.Text(form.FieldDocumentRevision),
			Format:                domain.ParsePlanFormat(acc.Text(form.FieldPlanFormat)),
			CoverPhoto:            acc.Image(form.FieldCoverPhoto),
			CompanyLogo:           acc.Image(form.FieldCompanyLogo),
			IncludeSignatureBlock: acc.Checked(form.FieldIncludeSignatureBlock),
		},
	}
}

// coatings keeps every item so entry numbers match form positions. Only
// the protected blank item of an untouched list reads as no coatings.
func coatings(acc form.Accessor) []domain.AFCEntry {
	var out []domain.AFCEntry
	for pos := 1; pos <= acc.Items(form.ListAFC); pos++ {
		item := func(field string) string { return acc.ItemText(form.ListAFC, field, pos) }
		e := domain.AFCEntry{
			ProductName:     item(form.ItemProductName),
			Manufacturer:    item(form.ItemManufacturer),
			Type:            item(form.ItemType),
			ServiceLife:     item(form.ItemServiceLife),
			Locations:       item(form.ItemLocations),
			SuitableProfile: item(form.ItemSuitableProfile),
			Maintenance:     item(form.ItemMaintenance),
		}
		out = append(out, e)
	}
	if len(out) == 1 && out[0].IsEmpty() {
		return nil
	}
	return out
}

func growthSystems(acc form.Accessor) []domain.MGPSEntry {
	var out []domain.MGPSEntry
	for pos := 1; pos <= acc.Items(form.ListMGPS); pos++ {
		item := func(field string) string { return acc.ItemText(form.ListMGPS, field, pos) }
		e := domain.MGPSEntry{
			Manufacturer: item(form.ItemManufacturer),
			Model:        item(form.ItemModel),
			Type:         item(form.ItemType),
			ServiceLife:  item(form.ItemServiceLife),
			Locations:    item(form.ItemLocations),
			Manual:       item(form.ItemManual),
		}
		out = append(out, e)
	}
	if len(out) == 1 && out[0].IsEmpty() {
		return nil
	}
	return out
}

// Collect validates r, consults policy when required fields are empty, and
// returns the snapshot. The presence result is returned in every case so the
// caller can report it. A declined policy yields ErrAborted.
func Collect(ctx context.Context, r form.Reader, schema form.Schema, policy presence.ProceedPolicy) (domain.PlanData, presence.Result, error) {
	logger := logging.WithOperation(logging.WithComponent("collector"), "collect")

	res := presence.Check(r, schema)
	if !res.Valid() {
		if policy == nil {
			policy = presence.NeverProceed
		}
		ok, err := policy.Proceed(ctx, res)
		if err != nil {
			return domain.PlanData{}, res, fmt.Errorf("confirming missing fields: %w", err)
		}
		if !ok {
			logger.Info("generation declined", "missing", res.Summary())
			return domain.PlanData{}, res, ErrAborted
		}
		logger.Debug("proceeding with placeholders", "missing", res.Summary())
	}

	return Snapshot(form.NewAccessor(r, schema)), res, nil
}
