package ai

// ExtractSecuritiesPrompt drives schema-constrained extraction of securities
// purchase agreements. The single %s placeholder receives the contract text.
const ExtractSecuritiesPrompt = `
# Task Context
You are an expert legal AI specializing in securities law and corporate finance. Extract SPECIFIC information from the securities agreement below. Be PRECISE and look for exact terms.

# Background Data
CONTRACT TEXT:
%s

# Detailed Task Description & Rules
1. EXECUTION DATE - Look for phrases like:
   - "executed on", "dated as of", "this ___ day of", "effective date"
   - Extract the EXACT date in YYYY-MM-DD format
2. FINANCIAL TERMS - Look for:
   - "purchase price", "total offering", "aggregate purchase price"
   - "$X per share", "consideration of $", "payment of $"
   - Extract EXACT dollar amounts as bare numbers (no $ symbol, no commas)
3. SECURITIES DETAILS - Identify:
   - "shares of common stock", "preferred stock", "warrants"
   - Number of shares: "X shares", "up to X shares"
   - Per-share prices and warrant exercise prices
4. PARTIES - Extract:
   - Company name (often after "between" or "by and between")
   - Entity type: "Inc.", "LLC", "Corporation", "Ltd."
   - State of incorporation: "Delaware corporation", "Nevada LLC"
   - Investor or purchaser names, with their role
5. CLOSING CONDITIONS - Look for:
   - "conditions precedent", "closing conditions", "subject to"
   - Due diligence, regulatory approvals, board approvals
6. CONTRACT TYPE - Determine the exact type:
   - securities_purchase, warrant, rights, license, employment, settlement, lease, generic

# Rules
- Dates always in YYYY-MM-DD format.
- Dollar amounts and share counts as bare numbers only.
- Booleans as true/false.
- If parsing fails partially, still extract what you can find.
- Always provide a meaningful two to three sentence summary of the transaction.

# Output Formatting
Respond with a single JSON object matching the provided schema. No commentary, no extra text.
`

// ExtractLicensePrompt drives schema-constrained extraction of license
// agreements. The single %s placeholder receives the contract text.
const ExtractLicensePrompt = `
# Task Context
You are analyzing a LICENSE AGREEMENT. Extract SPECIFIC information from the text below.

# Background Data
CONTRACT TEXT:
%s

# Detailed Task Description & Rules
1. PARTIES - Identify:
   - Licensor: company granting the license
   - Licensee: company receiving the license
   - Entity types and jurisdictions for both
2. INTELLECTUAL PROPERTY - Look for:
   - Patents: "Patent No.", "U.S. Patent", "patent application"
   - Licensed product and technology names
   - Field of use: therapeutic areas, indications
3. FINANCIAL TERMS - Extract:
   - Upfront payments: "upfront fee", "initial payment"
   - Royalty rates: "X%% royalty", "royalty of X percent"
4. TERRITORY AND SCOPE:
   - Geographic territory: "worldwide", "United States", specific countries
   - Exclusivity: exclusive or non_exclusive
5. KEY DATES:
   - Execution date, effective date in YYYY-MM-DD format

# Rules
- Extract EXACT amounts, percentages and dates as bare numbers and YYYY-MM-DD strings.
- Be precise with party names and patent numbers.
- Set contract_type to "license".
- Always provide a meaningful two to three sentence summary of the grant.

# Output Formatting
Respond with a single JSON object matching the provided schema. No commentary, no extra text.
`

// CypherPrompt drives free-form Cypher generation. Placeholders: graph
// schema description, user question, row limit.
const CypherPrompt = `
# Task Context
You are a Neo4j Cypher query expert. Based on the user's question, generate a Cypher query that retrieves relevant contracts from a knowledge graph.

# Background Data
DATABASE SCHEMA:
%s

USER QUESTION: %s

# Detailed Task Description & Rules
Generate a Cypher query that:
1. Matches the user's intent and retrieves relevant contracts
2. Includes related entities via OPTIONAL MATCH (parties, patents, products, territories)
3. Uses appropriate WHERE clauses for filtering, CONTAINS for text searches, numeric comparisons for amounts and dates
4. Uses collect() to group related entities
5. Returns explicit fields, never whole nodes
6. Orders results by c.execution_date DESC
7. Limits results to %d contracts

# Output Formatting
Return ONLY the Cypher query, no explanations, no markdown fences.
`

// AnswerPrompt narrates retrieved contract rows into a plain-language answer.
// Placeholders: retrieved context, user question.
const AnswerPrompt = `
# Task Context
You are a legal research assistant answering a question about a portfolio of contracts stored in a knowledge graph.

# Background Data
RETRIEVED CONTRACTS:
%s

USER QUESTION: %s

# Detailed Task Description & Rules
- Answer only from the retrieved contracts above. Do not invent contracts, parties or amounts.
- Quote exact amounts, dates and party names when they support the answer.
- If the retrieved contracts do not contain the answer, say so plainly.

# Output Formatting
A concise plain-text answer, no markdown headers.
`
