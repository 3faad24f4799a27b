package booking

import (
	"strings"

	"github.com/nekogravitycat/freight-booking-backend/internal/pkg/apperror"
)

// normalized trims the free-text fields the business rules look at, so a
// whitespace-only value counts as absent.
func (r Request) normalized() Request {
	r.ImportLicenseReference = strings.TrimSpace(r.ImportLicenseReference)
	r.ExportDeclarationReference = strings.TrimSpace(r.ExportDeclarationReference)
	r.VesselName = strings.TrimSpace(r.VesselName)
	r.VesselIMONumber = strings.TrimSpace(r.VesselIMONumber)
	r.VoyageNumber = strings.TrimSpace(r.VoyageNumber)
	return r
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateRequest checks the conditional business rules of a create or update
// request. It runs before anything is resolved or written.
func ValidateRequest(req Request) error {
	if req.IsImportLicenseRequired && blank(req.ImportLicenseReference) {
		return apperror.InvalidInput("importLicenseReference is required when isImportLicenseRequired is true")
	}
	if req.IsExportDeclarationRequired && blank(req.ExportDeclarationReference) {
		return apperror.InvalidInput("exportDeclarationReference is required when isExportDeclarationRequired is true")
	}

	if req.ExpectedArrivalWindowStart == nil &&
		req.ExpectedArrivalWindowEnd == nil &&
		req.ExpectedDepartureDate == nil &&
		blank(req.VesselIMONumber) &&
		blank(req.VesselName) &&
		blank(req.VoyageNumber) {
		return apperror.InvalidInput("one of expectedArrivalAtPlaceOfDeliveryStartDate, expectedArrivalAtPlaceOfDeliveryEndDate, " +
			"expectedDepartureDate, vesselIMONumber, vesselName or carrierExportVoyageNumber is required")
	}

	start, end := req.ExpectedArrivalWindowStart, req.ExpectedArrivalWindowEnd
	if start != nil && end != nil && start.After(*end) {
		return apperror.InvalidInput("expectedArrivalAtPlaceOfDeliveryStartDate must not be after expectedArrivalAtPlaceOfDeliveryEndDate")
	}
	return nil
}

// checkEquipment verifies that no requested equipment lists more references than units.
func checkEquipment(items []RequestedEquipment) error {
	for i, e := range items {
		if len(e.EquipmentReferences) > e.Units {
			return apperror.InvalidParameter(
				"requestedEquipments[%d]: %d equipmentReferences exceed the %d requested units",
				i, len(e.EquipmentReferences), e.Units,
			)
		}
	}
	return nil
}
