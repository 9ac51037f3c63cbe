package tools

// Default included_sources catalogs per search domain. These pin each tool
// to the Valyu datasets appropriate for it; callers can override via Options.

var financeSources = []string{
	"valyu/valyu-stocks",
	"valyu/valyu-sec-filings",
	"valyu/valyu-earnings-US",
	"valyu/valyu-balance-sheet-US",
	"valyu/valyu-income-statement-US",
	"valyu/valyu-cash-flow-US",
	"valyu/valyu-dividends-US",
	"valyu/valyu-insider-transactions-US",
	"valyu/valyu-market-movers-US",
	"valyu/valyu-crypto",
	"valyu/valyu-forex",
	"valyu/valyu-bls",
	"valyu/valyu-fred",
	"valyu/valyu-world-bank",
}

var paperSources = []string{
	"valyu/valyu-arxiv",
	"valyu/valyu-biorxiv",
	"valyu/valyu-medrxiv",
	"valyu/valyu-pubmed",
}

var bioSources = []string{
	"valyu/valyu-pubmed",
	"valyu/valyu-biorxiv",
	"valyu/valyu-medrxiv",
	"valyu/valyu-clinical-trials",
	"valyu/valyu-drug-labels",
}

var patentSources = []string{
	"valyu/valyu-patents",
}

var secSources = []string{
	"valyu/valyu-sec-filings",
}

var economicsSources = []string{
	"valyu/valyu-bls",
	"valyu/valyu-fred",
	"valyu/valyu-world-bank",
	"valyu/valyu-worldbank-indicators",
	"valyu/valyu-usaspending",
}
