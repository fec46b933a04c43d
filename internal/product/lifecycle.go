package product

// Product lifecycle:
//
//	create ──► pending ──admin──► approved
//	              │   ◄──edit────   │
//	              └──admin──► rejected ──edit──► pending
//
// Admins may also override approved⇄rejected directly. Only approved
// products are visible in the catalog and purchasable.

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsReviewOutcome reports whether s is a target an admin may set.
func (s Status) IsReviewOutcome() bool {
	return s == StatusApproved || s == StatusRejected
}

// Purchasable is the single visibility rule shared by catalog, cart and checkout.
func (p *Product) Purchasable() bool {
	return p != nil && p.Status == StatusApproved
}

// applyEdit merges params into p and demotes it back to pending review.
func (p *Product) applyEdit(params UpdateProductParams) {
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Description != nil {
		p.Description = *params.Description
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.Category != nil {
		p.Category = *params.Category
	}
	if params.Images != nil {
		p.Images = params.Images
	}
	if params.Quantity != nil {
		p.Quantity = *params.Quantity
	}
	p.Status = StatusPending
}
