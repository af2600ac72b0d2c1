package services

import (
	"github.com/google/uuid"

	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// applyOverviewInput copies non-nil input fields onto an overview record
func applyOverviewInput(overview *models.CompanyOverview, input *models.CompanyOverviewInput) {
	if input.RegName != "" {
		overview.RegName = input.RegName
	}
	if input.TradingName != nil {
		overview.TradingName = *input.TradingName
	}
	if input.Website != nil {
		overview.Website = *input.Website
	}
	if input.Description != nil {
		overview.Description = *input.Description
	}
	if input.HQCountry != nil {
		overview.HQCountry = *input.HQCountry
	}
	if input.City != nil {
		overview.City = *input.City
	}
	if input.FoundedYear != nil {
		overview.FoundedYear = *input.FoundedYear
	}
	if input.EmployeeCount != nil {
		overview.EmployeeCount = *input.EmployeeCount
	}
	if input.IndustryTags != nil {
		overview.IndustryTags = models.StringList(input.IndustryTags)
	}
}

// applyFinancialsInput copies non-nil input fields onto a financials record
func applyFinancialsInput(fin *models.FinancialDetails, input *models.FinancialDetailsInput) {
	if input.RevenueValue != nil {
		fin.RevenueValue = *input.RevenueValue
	}
	if input.EbitdaValue != nil {
		fin.EbitdaValue = *input.EbitdaValue
	}
	if input.EbitdaMargin != nil {
		fin.EbitdaMargin = *input.EbitdaMargin
	}
	if input.NetDebt != nil {
		fin.NetDebt = *input.NetDebt
	}
	if input.Currency != nil {
		fin.Currency = *input.Currency
	}
	if input.FiscalYear != nil {
		fin.FiscalYear = *input.FiscalYear
	}
	if input.AuditedByThird != nil {
		fin.AuditedByThird = *input.AuditedByThird
	}
}

func newOverview(input *models.CompanyOverviewInput) *models.CompanyOverview {
	overview := &models.CompanyOverview{ID: "cov_" + uuid.New().String()}
	applyOverviewInput(overview, input)
	return overview
}

func newFinancials(input *models.FinancialDetailsInput) *models.FinancialDetails {
	fin := &models.FinancialDetails{ID: "fin_" + uuid.New().String()}
	applyFinancialsInput(fin, input)
	return fin
}

// profilePreloads lists the eager-loads for unrestricted staff reads
var profilePreloads = []string{
	"CompanyOverview",
	"CompanyOverview.Country",
	"FinancialDetails",
	"PartnershipDetails",
	"TeaserCenter",
	"Deals",
}
