package usecase

import (
	"fmt"

	"adprofit/internal/domain"
)

// The four scenario analyzers. Each fills the shared advice accumulator and
// returns the scenario-level status; the cross-cutting heuristics run after
// them and never contradict what they decided.

func analyzeAboveTarget(in domain.DiagnosticInputs, acc *advice) domain.DiagnosticStatus {
	r := in.Results
	status := domain.StatusExcellent

	if r.MLL < targetMarginPercent {
		status = domain.StatusWarning
		acc.issue(fmt.Sprintf(
			"Net margin is %.1f%%, under the 15%% floor: the cost structure eats the profit even though ROAS beats the target.", r.MLL))
		acc.recommend("Review product, commission and tax costs before scaling; more volume amplifies a structural margin problem.")
	}

	if r.Competitiveness != nil && r.Competitiveness.Status == domain.CompetitivenessRed {
		status = domain.StatusWarning
		acc.issue("The price required for a 15% margin is above every competitor: pricing needs urgent attention despite the strong ROAS.")
	}

	switch {
	case in.DailyBudget.IsUnlimited():
		acc.recommend("Spend is uncapped: scale the budget gradually while ROAS holds at or above target.")
		acc.shortTerm = append(acc.shortTerm, "Raise spend in small steps and confirm ROAS holds after each one.")
	case in.HasMonthlyBudget:
		acc.recommend(fmt.Sprintf(
			"Monthly budget still has headroom: increase the daily cap of %.2f in gradual steps.", in.DailyBudget.Amount()))
		acc.shortTerm = append(acc.shortTerm, "Schedule gradual daily-budget increases against the monthly headroom.")
	default:
		acc.recommend(fmt.Sprintf(
			"No monthly headroom: maximize delivery inside the current daily cap of %.2f.", in.DailyBudget.Amount()))
		acc.shortTerm = append(acc.shortTerm, "Shift the fixed daily cap toward the best-converting hours and placements.")
	}

	if comp := r.Competitiveness; comp != nil {
		switch comp.Status {
		case domain.CompetitivenessGreen:
			acc.recommend("Pricing is competitive; keep the current price position.")
		case domain.CompetitivenessYellow:
			acc.recommend("Trim costs so the margin target becomes reachable at or below the market average price.")
		case domain.CompetitivenessRed:
			acc.recommend("Act on pricing now: cut costs or lower the margin target, the current structure cannot compete.")
		}
	}

	if status == domain.StatusExcellent {
		acc.immediate = append(acc.immediate, "Keep the current configuration; the campaign beats its target profitably.")
	} else {
		acc.immediate = append(acc.immediate, "Fix the margin and pricing problems before raising spend.")
	}
	acc.monitoring = append(acc.monitoring,
		"Track ROAS daily while scaling and pull back at the first sustained dip below target.",
		"Recheck the unit economics whenever costs or commission change.")

	return status
}

func analyzeBelowTarget(in domain.DiagnosticInputs, acc *advice) domain.DiagnosticStatus {
	r := in.Results
	target := *in.ROASTarget
	status := domain.StatusWarning

	acc.issue(fmt.Sprintf(
		"ROAS is %.2f against a target of %.2f, a gap of %.2f.", r.ROAS, target, target-r.ROAS))

	if r.MLL < targetMarginPercent {
		// A thin margin is a separate problem from the missed target and
		// the two routinely coexist.
		status = domain.StatusCritical
		acc.issue(fmt.Sprintf(
			"Net margin of %.1f%% is under 15%%: this is a margin problem on top of the ROAS problem.", r.MLL))
		acc.recommend("Rework the cost structure in parallel with the ad optimization; a better ROAS alone will not fix the unit economics.")
	}

	if r.Competitiveness != nil && r.Competitiveness.Status == domain.CompetitivenessRed {
		status = domain.StatusCritical
		acc.issue("The price needed for a healthy margin sits above the whole observed market range.")
	}

	if r.ROAS < 0.7*target {
		acc.recommend("Pause or sharply limit spend until targeting and conversion improve; the current return does not justify the investment.")
		acc.immediate = append(acc.immediate, "Cut the daily budget now; spend at this efficiency is burning money.")
	} else {
		acc.recommend("Hold the current budget while optimizing creatives and conversion; the gap to target is closable without cutting spend.")
		acc.immediate = append(acc.immediate, "Audit targeting, creatives and the product page for conversion leaks.")
	}

	acc.shortTerm = append(acc.shortTerm, "Test creative variants and refine keyword or audience targeting.")
	acc.monitoring = append(acc.monitoring, "Compare ROAS against the target weekly and re-evaluate spend after each change.")

	return status
}

func analyzeNoSales(in domain.DiagnosticInputs, acc *advice) domain.DiagnosticStatus {
	ctr := ratePercent(in.Clicks, in.Impressions)

	// Walk down the funnel and stop at the first stage that is broken; the
	// advice for each stage is disjoint on purpose.
	switch {
	case in.Impressions == 0:
		acc.issue("The campaign delivered zero impressions: ads are not being shown at all.")
		acc.recommend("Check that the campaign is active, the ads are approved and the budget is actually being consumed.")
		acc.immediate = append(acc.immediate, "Verify campaign status, ad approval and billing before anything else.")
		acc.shortTerm = append(acc.shortTerm, "If delivery does not start, rebuild the campaign or open a marketplace support ticket.")

	case in.Clicks == 0:
		acc.issue("Impressions are delivered but nobody clicks: the ad fails to attract any attention.")
		acc.recommend("Replace the cover image and rewrite the title; the current creative earns zero engagement from real reach.")
		acc.immediate = append(acc.immediate, "Swap the ad creative today; zero clicks from delivered impressions means the current one is dead.")
		acc.shortTerm = append(acc.shortTerm, "Run two or three creative variants against each other.")

	case ctr < 0.3:
		acc.issue(fmt.Sprintf("CTR of %.2f%% is far below viable: the ad barely attracts clicks.", ctr))
		acc.recommend("Improve the creative and sharpen the offer shown in the ad; under 0.3% CTR the campaign cannot work.")
		acc.immediate = append(acc.immediate, "Revise image, title and displayed price against the best-ranked competitors.")
		acc.shortTerm = append(acc.shortTerm, "Iterate creatives until CTR clears 0.5% before judging anything further down the funnel.")

	case in.Clicks > 0 && in.ItemsSold == 0:
		acc.issue("Visitors click but nobody buys: the listing, the price or the trust signals fail at the last step.")
		acc.recommend("Review the product page end to end: price versus competitors, photos, description, stock and reviews.")
		acc.immediate = append(acc.immediate, "Compare the listing side by side with the top sellers and close the gaps.")
		acc.shortTerm = append(acc.shortTerm, "Fix page objections such as shipping cost, reviews and photos, then watch conversion.")

	default:
		// Traffic converts but no revenue is attributed, which points at
		// the reporting rather than the funnel.
		acc.issue("No revenue is attributed to the campaign despite traffic that converts.")
		acc.recommend("Review delivery and sales attribution; the counters do not add up to a working funnel.")
		acc.immediate = append(acc.immediate, "Confirm the ad spend, attribution window and sales reporting are consistent.")
	}

	acc.monitoring = append(acc.monitoring, "Recheck the funnel counters daily until the first attributed sale lands.")

	return domain.StatusCritical
}

func analyzeVariable(in domain.DiagnosticInputs, acc *advice) domain.DiagnosticStatus {
	r := in.Results

	var status domain.DiagnosticStatus
	switch {
	case r.MLL >= 15:
		status = domain.StatusGood
	case r.MLL >= 10:
		status = domain.StatusWarning
		acc.issue(fmt.Sprintf("Net margin of %.1f%% is below the 15%% goal, though still above water.", r.MLL))
	default:
		status = domain.StatusCritical
		acc.issue(fmt.Sprintf("Net margin of %.1f%% is under 10%%: the campaign may be selling at a loss after all costs.", r.MLL))
	}

	switch {
	case r.ROAS < 5:
		status = downgradeStatus(status)
		acc.issue(fmt.Sprintf("ROAS of %.2f is weak: each unit of ad spend returns less than five in revenue.", r.ROAS))
	case r.ROAS < 10:
		acc.recommend(fmt.Sprintf("ROAS of %.2f is moderate; tighten targeting before raising spend.", r.ROAS))
	default:
		acc.recommend(fmt.Sprintf("ROAS of %.2f is strong; spend is clearly paying for itself.", r.ROAS))
	}

	acc.recommend(fmt.Sprintf(
		"No ROAS target is defined: derive one from the highest ACOS the margin can absorb (current ACOS is %.1f%%).", r.ACOS))

	ctr := ratePercent(in.Clicks, in.Impressions)
	conversion := ratePercent(in.ItemsSold, in.Clicks)

	if ctr < 0.5 {
		acc.recommend(fmt.Sprintf("CTR of %.2f%% is low; test new creatives and titles.", ctr))
	} else if ctr >= 1.5 {
		acc.recommend(fmt.Sprintf("CTR of %.2f%% is healthy; the creative is doing its job.", ctr))
	}

	if conversion < 3 {
		acc.recommend(fmt.Sprintf("Conversion of %.2f%% is low; work on the product page and the offer.", conversion))
	} else if conversion >= 8 {
		acc.recommend(fmt.Sprintf("Conversion of %.2f%% is excellent; the listing converts the traffic it gets.", conversion))
	}

	acc.immediate = append(acc.immediate, "Set an explicit ROAS target so the campaign can be judged against a goal.")
	acc.shortTerm = append(acc.shortTerm, "Consolidate at least two weeks of data, then derive the target from the observed ACOS.")
	acc.monitoring = append(acc.monitoring, "Watch margin and ROAS weekly until a target is in place.")

	return status
}

func downgradeStatus(s domain.DiagnosticStatus) domain.DiagnosticStatus {
	switch s {
	case domain.StatusExcellent:
		return domain.StatusGood
	case domain.StatusGood:
		return domain.StatusWarning
	default:
		return domain.StatusCritical
	}
}
