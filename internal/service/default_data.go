package service

import "github.com/ndewijer/Feasibility-Calculator-Backend/internal/model"

// DefaultProject returns the sample project loaded by a reset: a small office
// digitalisation project over five years at a 12% discount rate.
func DefaultProject() model.Project {
	return model.Project{
		Settings: model.ProjectSettings{
			HorizonYears:      model.DefaultHorizonYears,
			DiscountRatePct:   model.DefaultDiscountRatePct,
			DefaultDataLoaded: true,
		},
		CapitalItems: []model.LineItem{
			{ID: "79e1c473-4e21-4ac3-af5f-99b6e0cbfc73", Name: "Synology NAS Server", Quantity: 1, Unit: "unit", UnitPrice: 10599000},
			{ID: "bf7935f4-6824-471a-a7d0-d1c0b72ea194", Name: "Uninterruptible Power Supply (UPS)", Quantity: 1, Unit: "unit", UnitPrice: 3529000},
			{ID: "51d86d79-43d9-41a9-a6ec-a106c839f2ef", Name: "Network Switch", Quantity: 2, Unit: "unit", UnitPrice: 132900},
			{ID: "4157ff5c-8e94-4e15-9431-974da24ef6da", Name: "Laptop/Desktop", Quantity: 9, Unit: "unit", UnitPrice: 6671000},
			{ID: "11616bc0-3e98-4618-a9f0-aaefaec93fe4", Name: "Tablet", Quantity: 6, Unit: "unit", UnitPrice: 4249150},
			{ID: "303585da-d189-4973-a946-f8847035de87", Name: "Wireless Access Point", Quantity: 3, Unit: "unit", UnitPrice: 175000},
			{ID: "240d5d78-811b-4717-9034-4ea76e27e32d", Name: "System Development", Quantity: 1, Unit: "package", UnitPrice: 28000000},
			{ID: "af543c24-d7ad-423b-8bed-cac90c8b8270", Name: "Setup & Installation", Quantity: 1, Unit: "package", UnitPrice: 2000000},
			{ID: "5fb9ae44-e5bc-47d9-869f-d90d12a69e41", Name: "Onboarding & Training", Quantity: 1, Unit: "package", UnitPrice: 1500000},
			{ID: "b5f2f700-b75b-4db9-81f1-802fe06f6051", Name: "Domain & Configuration", Quantity: 1, Unit: "package", UnitPrice: 2319900},
		},
		InflowItems: []model.LineItem{
			{ID: "cf693797-5cd7-4985-9245-a3f96e562162", Name: "Administrative labour savings", Quantity: 1, Unit: "package", UnitPrice: 21600000},
			{ID: "631868b8-1aad-46dd-93ed-b7522534f514", Name: "Reduced error & rework cost", Quantity: 1, Unit: "package", UnitPrice: 16800000},
			{ID: "471147a2-d322-40c7-a45d-293b806b6fde", Name: "Business process productivity", Quantity: 1, Unit: "package", UnitPrice: 45153948},
			{ID: "eeaa72cc-023e-438a-bdc6-4b8f724f91ee", Name: "Paper document savings", Quantity: 1, Unit: "package", UnitPrice: 4813680},
		},
		OutflowItems: []model.LineItem{
			{ID: "278e5ae1-b76f-4601-9f19-1cc84079b9d4", Name: "Dedicated internet connection", Quantity: 2, Unit: "package", UnitPrice: 375000},
			{ID: "75090947-0595-4e0d-ad68-3df78a71b876", Name: "Electricity (server & infrastructure)", Quantity: 1, Unit: "package", UnitPrice: 456000},
			{ID: "de1e3463-a3cb-46f1-9b49-f73ea19a9f21", Name: "Public IP", Quantity: 1, Unit: "package", UnitPrice: 331440},
			{ID: "8ebb7c15-4991-4e94-9db0-59473729d032", Name: "Maintenance & technical support", Quantity: 1, Unit: "package", UnitPrice: 1500000},
		},
	}
}
