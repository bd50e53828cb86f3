// Package router routes the command strings produced by menu items.
//
// Commands are plain text lines. The first word is the verb; a handler can
// be registered per verb, and everything nobody claimed goes to a fallback,
// normally the host's command interpreter.
//
// # Basic Usage
//
//	r := router.New(8)
//
//	r.Register("menu", func(args string) error {
//	    // remember where we are, then open the page named by args
//	    if err := r.Stack().Push(current, router.Resume{Focus: focus}); err != nil {
//	        return err
//	    }
//	    return open(args)
//	})
//
//	r.Register("return", func(string) error {
//	    entry := r.Stack().Pop()
//	    if entry == nil {
//	        return errNoParent
//	    }
//	    return reopen(entry.Page, entry.Resume)
//	})
//
//	r.Fallback(interpreter.Execute)
//
//	r.Dispatch(`M98 P"config.g"`) // goes to the interpreter
//	r.Dispatch("menu settings")  // opens the settings page
//
// # Resume State
//
// Pages pushed on the stack carry the cursor position they were left with.
// When navigating back the page is rebuilt and the cursor restored from it,
// so the user lands on the item they came from.
package router
