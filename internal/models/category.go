package models

type AwardCategory struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	LabelChi string `json:"labelChi"`
}

var AwardCategories = []AwardCategory{
	{Value: "beauty-fitness", Label: "Beauty & Fitness", LabelChi: "美容及健美"},
	{Value: "health-personal-care", Label: "Health & Personal Care Product", LabelChi: "健康及個人護理用品"},
	{Value: "health-food-supplement", Label: "Health Food & Supplement", LabelChi: "健康食品及保健品"},
	{Value: "health-innovation", Label: "Health Innovation", LabelChi: "健康創新"},
	{Value: "health-protection-planning", Label: "Health Protection & Planning", LabelChi: "健康保障及策劃"},
	{Value: "healthy-community", Label: "Healthy Community Partnership", LabelChi: "社區健康合作夥伴"},
	{Value: "healthy-entrepreneurship", Label: "Healthy Entrepreneurship", LabelChi: "企業健康管理"},
	{Value: "marketing-campaign", Label: "Marketing Campaign", LabelChi: "行銷活動"},
	{Value: "medical-professional", Label: "Medical & Professional Service", LabelChi: "醫療及專業服務"},
	{Value: "sustainable-csr", Label: "Sustainable Corporate Social Responsibility", LabelChi: "可持續企業社會責任"},
	{Value: "wellness-therapeutic", Label: "Wellness & Therapeutic", LabelChi: "身心靈健康及療程"},
}

// AwardCategoryValues returns the category values in display order.
func AwardCategoryValues() []string {
	values := make([]string, len(AwardCategories))
	for i, c := range AwardCategories {
		values[i] = c.Value
	}
	return values
}

// AwardCategoryLabel falls back to the raw value for unknown categories.
func AwardCategoryLabel(value string) string {
	for _, c := range AwardCategories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
