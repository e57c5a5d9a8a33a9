package main

// Blank-importing every language adapter registers it with internal/lang
// via its package init(), so the CLI supports the full language set
// without the orchestrator or analyzer needing to know the list.
import (
	_ "github.com/morfx-security/govulnscan/internal/lang/c"
	_ "github.com/morfx-security/govulnscan/internal/lang/cpp"
	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
	_ "github.com/morfx-security/govulnscan/internal/lang/java"
	_ "github.com/morfx-security/govulnscan/internal/lang/javascript"
	_ "github.com/morfx-security/govulnscan/internal/lang/php"
	_ "github.com/morfx-security/govulnscan/internal/lang/python"
	_ "github.com/morfx-security/govulnscan/internal/lang/ruby"
	_ "github.com/morfx-security/govulnscan/internal/lang/rust"
	_ "github.com/morfx-security/govulnscan/internal/lang/typescript"
)
