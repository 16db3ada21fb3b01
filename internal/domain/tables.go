package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Site content
	&Product{},
	&Testimonial{},
	&Review{},
	&Inquiry{},
}

// Change-notification table identifiers. Mutating paths publish change events
// tagged with one of these so cache consumers can re-fetch.
const (
	TableProducts     = "products"
	TableTestimonials = "testimonials"
	TableReviews      = "reviews"
	TableInquiries    = "inquiries"
)
