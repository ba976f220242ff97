package device

import "testing"

func TestElementTap(t *testing.T) {
	d, f := loadedDriver(t, sampleDump)

	el, err := d.FindElementByID("com.app:id/login_btn", false)
	if err != nil {
		t.Fatal(err)
	}

	if err := el.Tap(); err != nil {
		t.Fatal(err)
	}
	// [100,200][300,280] -> center (200,240)
	if !argvEqual(f.lastCall(), []string{"shell", "input", "tap", "200", "240"}) {
		t.Errorf("tap argv = %v", f.lastCall())
	}
}

func TestElementLongPress(t *testing.T) {
	d, f := loadedDriver(t, sampleDump)

	el, err := d.FindElementByID("com.app:id/login_btn", false)
	if err != nil {
		t.Fatal(err)
	}

	if err := el.LongPress(1500); err != nil {
		t.Fatal(err)
	}
	want := []string{"shell", "input", "swipe", "200", "240", "200", "240", "1500"}
	if !argvEqual(f.lastCall(), want) {
		t.Errorf("long press argv = %v", f.lastCall())
	}
}

func TestElementSendKeys(t *testing.T) {
	d, f := loadedDriver(t, sampleDump)

	el, err := d.FindElementByID("com.app:id/input", false)
	if err != nil {
		t.Fatal(err)
	}

	before := len(f.calls)
	if err := el.SendKeys("alice"); err != nil {
		t.Fatal(err)
	}

	calls := f.calls[before:]
	if len(calls) != 2 {
		t.Fatalf("expected tap then text, got %d calls", len(calls))
	}
	// [50,470][500,530] -> center (275,500)
	if !argvEqual(calls[0], []string{"shell", "input", "tap", "275", "500"}) {
		t.Errorf("focus tap argv = %v", calls[0])
	}
	if !argvEqual(calls[1], []string{"shell", "input", "text", "alice"}) {
		t.Errorf("text argv = %v", calls[1])
	}
}

func TestElementAccessors(t *testing.T) {
	d, _ := loadedDriver(t, sampleDump)

	el, err := d.FindElementByName("Login", false)
	if err != nil {
		t.Fatal(err)
	}

	if el.Text() != "Login" {
		t.Errorf("Text() = %q", el.Text())
	}
	if el.ID() != "com.app:id/login_btn" {
		t.Errorf("ID() = %q", el.ID())
	}
	if el.ClassName() != "android.widget.Button" {
		t.Errorf("ClassName() = %q", el.ClassName())
	}
	if el.Attr("index") != "0" {
		t.Errorf("Attr(index) = %q", el.Attr("index"))
	}
	if el.By != ByName || el.Value != "Login" {
		t.Errorf("locator = %s=%q", el.By, el.Value)
	}
}
