package host

// WrapperArgs is the markup the host wraps around a rendered widget plus the
// identifiers of the current placement.
type WrapperArgs struct {
	BeforeWidget string `json:"before_widget"`
	AfterWidget  string `json:"after_widget"`
	BeforeTitle  string `json:"before_title"`
	AfterTitle   string `json:"after_title"`
	ID           string `json:"id"`
	WidgetID     string `json:"widget_id"`
}

// DefaultWrapperArgs mirrors a typical sidebar registration.
func DefaultWrapperArgs(sidebarID, widgetID string) WrapperArgs {
	return WrapperArgs{
		BeforeWidget: `<section id="` + widgetID + `" class="widget">`,
		AfterWidget:  `</section>`,
		BeforeTitle:  `<h2 class="widget-title">`,
		AfterTitle:   `</h2>`,
		ID:           sidebarID,
		WidgetID:     widgetID,
	}
}
