package agent

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack"
	"github.com/fintrack/fintrack/renderer"
	"github.com/fintrack/fintrack/signals"
	"github.com/fintrack/fintrack/yahoo"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to track personal finances: income, expenses, investments, and net worth.
			Route bookkeeping requests (recording or listing transactions, summaries, budgets) to the Bookkeeper.
			Route market and portfolio requests (stock prices, portfolio value, net worth, buy records) to the Analyst.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper creates the expert that reads and edits the transaction side
// of the ledger.
func NewBookkeeper(ledger *fintrack.Ledger) *Expert {
	lib := bookkeeperTools(ledger)
	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. It records and edits the user's income and
		expense transactions, and computes summaries, category breakdowns, and
		monthly trends from them.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's transaction ledger.
				Use the tools to record income and expenses, list transactions,
				and compute summaries, spending breakdowns, and monthly trends.
				Amounts are always positive: the type (income or expense) carries the sign.
				Dates use the YYYY-MM-DD format; when the user is vague, prefer today.
				When recording, confirm the created record back to the user.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// NewAnalyst creates the expert that values the portfolio and reads the
// market.
func NewAnalyst(ledger *fintrack.Ledger, provider fintrack.QuoteProvider) *Expert {
	lib := analystTools(ledger, provider)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It records stock purchases, values the
		portfolio at market prices, computes the user's net worth, and reads
		live quotes and technical signals.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an investment analyst in charge of the user's portfolio.
				Use the tools to record purchases, value holdings, and read the market.
				A purchase can be given either as a number of shares or as a dollar
				amount; when the price per share is not given, the current market
				price is used.
				Recording a purchase also records the matching expense in the
				transaction ledger automatically, tell the user when it happens.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// output and failure build the two shapes of a tool response.
func output(id, name, out string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": out}}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

// argString reads an optional string argument.
func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string but %T", key, v)
	}
	return s, nil
}

// argFloat reads an optional numeric argument. The model sends all numbers
// as float64.
func argFloat(args map[string]any, key string) (float64, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false, fmt.Errorf("argument %q is not a number but %T", key, v)
	}
	return f, true, nil
}

// argDate reads an optional YYYY-MM-DD argument; absent means the zero date.
func argDate(args map[string]any, key string) (fintrack.Date, error) {
	s, err := argString(args, key)
	if err != nil || s == "" {
		return fintrack.Date{}, err
	}
	d, err := fintrack.ParseDate(s)
	if err != nil {
		return fintrack.Date{}, fmt.Errorf("argument %q: %w", key, err)
	}
	return d, nil
}

// dateParam is the schema of every date argument.
func dateParam(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc + " In YYYY-MM-DD format."}
}

func textResponse(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func bookkeeperTools(ledger *fintrack.Ledger) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "add_transaction",
				Description: "Record an income or expense transaction in the ledger.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type":           {Type: genai.TypeString, Description: "Either 'income' or 'expense'."},
						"category":       {Type: genai.TypeString, Description: "Category label, e.g. Food, Salary, Housing."},
						"amount":         {Type: genai.TypeNumber, Description: "Amount in dollars, always positive."},
						"description":    {Type: genai.TypeString, Description: "Free-text note."},
						"date":           dateParam("Transaction date, today when omitted."),
						"payment_method": {Type: genai.TypeString, Description: "How it was paid, default Cash."},
					},
					Required: []string{"type", "category", "amount"},
				},
				Response: textResponse("The created transaction."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "add_transaction"
				typ, err := argString(args, "type")
				if err != nil {
					return failure(id, name, err)
				}
				category, err := argString(args, "category")
				if err != nil {
					return failure(id, name, err)
				}
				amount, _, err := argFloat(args, "amount")
				if err != nil {
					return failure(id, name, err)
				}
				description, err := argString(args, "description")
				if err != nil {
					return failure(id, name, err)
				}
				day, err := argDate(args, "date")
				if err != nil {
					return failure(id, name, err)
				}
				payment, err := argString(args, "payment_method")
				if err != nil {
					return failure(id, name, err)
				}
				tx, err := ledger.AddTransaction(fintrack.TransactionType(typ), category, fintrack.USD(amount), description, day, payment)
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.TransactionsMarkdown([]fintrack.Transaction{tx}))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "view_transactions",
				Description: "List transactions, most recent first, optionally filtered.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"type":       {Type: genai.TypeString, Description: "Filter by 'income' or 'expense'."},
						"category":   {Type: genai.TypeString, Description: "Filter by category label."},
						"start_date": dateParam("Earliest date to include."),
						"end_date":   dateParam("Latest date to include."),
						"limit":      {Type: genai.TypeNumber, Description: "Maximum number of rows, all when omitted."},
					},
				},
				Response: textResponse("A markdown table of the matching transactions."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "view_transactions"
				var f fintrack.TransactionFilter
				typ, err := argString(args, "type")
				if err != nil {
					return failure(id, name, err)
				}
				f.Type = fintrack.TransactionType(typ)
				if f.Category, err = argString(args, "category"); err != nil {
					return failure(id, name, err)
				}
				if f.From, err = argDate(args, "start_date"); err != nil {
					return failure(id, name, err)
				}
				if f.To, err = argDate(args, "end_date"); err != nil {
					return failure(id, name, err)
				}
				limit, _, err := argFloat(args, "limit")
				if err != nil {
					return failure(id, name, err)
				}
				f.Limit = int(limit)
				return output(id, name, renderer.TransactionsMarkdown(ledger.Transactions(f)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_financial_summary",
				Description: "Compute total income, total expenses, and net cash flow over a date range.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": dateParam("Earliest date to include."),
						"end_date":   dateParam("Latest date to include."),
					},
				},
				Response: textResponse("The cash-flow summary."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "get_financial_summary"
				from, err := argDate(args, "start_date")
				if err != nil {
					return failure(id, name, err)
				}
				to, err := argDate(args, "end_date")
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.SummaryMarkdown(ledger.Summary(from, to), from, to))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "analyze_spending",
				Description: "Break down expenses by category over a date range, largest first, with each category's share.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start_date": dateParam("Earliest date to include."),
						"end_date":   dateParam("Latest date to include."),
					},
				},
				Response: textResponse("The spending breakdown by category."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "analyze_spending"
				from, err := argDate(args, "start_date")
				if err != nil {
					return failure(id, name, err)
				}
				to, err := argDate(args, "end_date")
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.SpendingMarkdown(ledger.SpendingByCategory(from, to), from, to))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_monthly_trend",
				Description: "Show income, expense, and net cash flow grouped by calendar month.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"months": {Type: genai.TypeNumber, Description: "How many recent months to show, default 6."},
					},
				},
				Response: textResponse("The month-by-month cash flow."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "get_monthly_trend"
				months, ok, err := argFloat(args, "months")
				if err != nil {
					return failure(id, name, err)
				}
				if !ok {
					months = 6
				}
				return output(id, name, renderer.TrendMarkdown(ledger.MonthlyTrend(int(months))))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_categories",
				Description: "List the suggested income and expense categories.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response:    textResponse("The advisory category lists."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "get_categories", renderer.CategoriesMarkdown())
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "delete_transaction",
				Description: "Delete a transaction by its id. A missing id is reported, not an error.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {Type: genai.TypeNumber, Description: "The transaction id to delete."},
					},
					Required: []string{"id"},
				},
				Response: textResponse("Whether a transaction was deleted."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "delete_transaction"
				txID, ok, err := argFloat(args, "id")
				if err != nil || !ok {
					return failure(id, name, fmt.Errorf("argument 'id' is required: %v", err))
				}
				removed, err := ledger.RemoveTransaction(int(txID))
				if err != nil {
					return failure(id, name, err)
				}
				if !removed {
					return output(id, name, fmt.Sprintf("No transaction with id %d.", int(txID)))
				}
				return output(id, name, fmt.Sprintf("Deleted transaction %d.", int(txID)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "export_transactions",
				Description: "Export the full transaction history to a CSV file.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"filename": {Type: genai.TypeString, Description: "Destination file name, e.g. export.csv."},
					},
					Required: []string{"filename"},
				},
				Response: textResponse("Where the file was written."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "export_transactions"
				filename, err := argString(args, "filename")
				if err != nil || filename == "" {
					return failure(id, name, fmt.Errorf("argument 'filename' is required: %v", err))
				}
				if err := ledger.ExportTransactionsCSV(filename); err != nil {
					return failure(id, name, err)
				}
				return output(id, name, fmt.Sprintf("Transactions exported to %s.", filename))
			},
		},
	}
}

func analystTools(ledger *fintrack.Ledger, provider fintrack.QuoteProvider) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "add_investment",
				Description: `Record a stock purchase. Give either the number of shares or a
				dollar amount to invest; when the price per share is omitted, the current
				market price is used. Also records the matching expense transaction.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol":         {Type: genai.TypeString, Description: "Ticker symbol, e.g. AAPL."},
						"quantity":       {Type: genai.TypeNumber, Description: "Number of shares, fractional allowed."},
						"amount":         {Type: genai.TypeNumber, Description: "Dollar amount to invest, instead of a share count."},
						"purchase_price": {Type: genai.TypeNumber, Description: "Price per share, current market price when omitted."},
						"date":           dateParam("Purchase date, today when omitted."),
					},
					Required: []string{"symbol"},
				},
				Response: textResponse("The recorded purchase lot."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "add_investment"
				symbol, err := argString(args, "symbol")
				if err != nil {
					return failure(id, name, err)
				}
				day, err := argDate(args, "date")
				if err != nil {
					return failure(id, name, err)
				}
				quantity, hasQty, err := argFloat(args, "quantity")
				if err != nil {
					return failure(id, name, err)
				}
				amount, hasAmount, err := argFloat(args, "amount")
				if err != nil {
					return failure(id, name, err)
				}
				if !hasQty && !hasAmount {
					return failure(id, name, fmt.Errorf("give either 'quantity' or 'amount'"))
				}
				price, hasPrice, err := argFloat(args, "purchase_price")
				if err != nil {
					return failure(id, name, err)
				}
				unit := fintrack.USD(price)
				if !hasPrice {
					if provider == nil {
						return failure(id, name, fmt.Errorf("no price given and no market data available"))
					}
					if unit, err = provider.CurrentPrice(symbol); err != nil {
						return failure(id, name, fmt.Errorf("no price given and the market lookup failed: %w", err))
					}
				}
				qty := fintrack.Q(quantity)
				if !hasQty {
					if !unit.IsPositive() {
						return failure(id, name, fmt.Errorf("cannot derive a share count from amount at price %s", unit))
					}
					qty = fintrack.Q(fintrack.USD(amount).Decimal().Div(unit.Decimal()))
				}
				inv, err := ledger.AddInvestment(symbol, qty, unit, day)
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.InvestmentsMarkdown([]fintrack.Investment{inv}))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "list_investments",
				Description: "List all recorded purchase lots.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response:    textResponse("A markdown table of the purchase lots."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "list_investments", renderer.InvestmentsMarkdown(ledger.Investments()))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "delete_investment",
				Description: `Delete every purchase lot of a symbol. The expense transactions
				recorded at purchase time are kept.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": {Type: genai.TypeString, Description: "Ticker symbol to remove."},
					},
					Required: []string{"symbol"},
				},
				Response: textResponse("How many lots were removed."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "delete_investment"
				symbol, err := argString(args, "symbol")
				if err != nil {
					return failure(id, name, err)
				}
				count, err := ledger.RemoveInvestments(symbol)
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, fmt.Sprintf("Removed %d lot(s) of %s. The original purchase expenses stay on the books.", count, fintrack.NormalizeSymbol(symbol)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "get_portfolio_value",
				Description: `Value the portfolio at current market prices: per-symbol holdings
				with average cost basis and gain/loss, plus aggregate totals.`,
				Parameters: &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response:   textResponse("The marked-to-market portfolio view."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "get_portfolio_value", renderer.PortfolioMarkdown(ledger.PortfolioValue(provider)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_net_worth",
				Description: "Compute net worth: cash balance plus the current value of all holdings.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
				Response:    textResponse("The net-worth summary."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, "get_net_worth", renderer.NetWorthMarkdown(ledger.NetWorth(provider)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_stock_quote",
				Description: "Get the current market price of a stock, with its daily change.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": {Type: genai.TypeString, Description: "Ticker symbol, e.g. AAPL."},
					},
					Required: []string{"symbol"},
				},
				Response: textResponse("The market snapshot."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "get_stock_quote"
				symbol, err := argString(args, "symbol")
				if err != nil {
					return failure(id, name, err)
				}
				if provider == nil {
					return failure(id, name, fmt.Errorf("no market data available"))
				}
				client, ok := provider.(*yahoo.Client)
				if !ok {
					// any provider can still answer with the bare price
					price, err := provider.CurrentPrice(symbol)
					if err != nil {
						return failure(id, name, err)
					}
					return output(id, name, fmt.Sprintf("%s: %s", fintrack.NormalizeSymbol(symbol), price))
				}
				q, err := client.Quote(symbol)
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.QuoteMarkdown(q))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name: "get_price_signals",
				Description: `Compute technical indicators (SMA, RSI, MACD) over the recent
				close-price history of a stock, with a one-word trend reading.`,
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"symbol": {Type: genai.TypeString, Description: "Ticker symbol, e.g. AAPL."},
						"days":   {Type: genai.TypeNumber, Description: "How many days of history to analyze, default 180."},
					},
					Required: []string{"symbol"},
				},
				Response: textResponse("The indicator report."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				const name = "get_price_signals"
				symbol, err := argString(args, "symbol")
				if err != nil {
					return failure(id, name, err)
				}
				days, ok, err := argFloat(args, "days")
				if err != nil {
					return failure(id, name, err)
				}
				if !ok {
					days = 180
				}
				if provider == nil {
					return failure(id, name, fmt.Errorf("no market data available"))
				}
				to := fintrack.Today()
				history, err := provider.History(symbol, to.Add(-int(days)), to)
				if err != nil {
					return failure(id, name, err)
				}
				report, err := signals.Analyze(fintrack.NormalizeSymbol(symbol), history)
				if err != nil {
					return failure(id, name, err)
				}
				return output(id, name, renderer.SignalsMarkdown(report))
			},
		},
	}
}
