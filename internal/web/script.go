package web

// reloadWhenReady polls readiness and reloads once the preload gate opens.
const reloadWhenReady = `
(function poll() {
  fetch('/readyz').then(function (r) {
    if (r.ok) { location.reload(); return; }
    setTimeout(poll, 500);
  }).catch(function () { setTimeout(poll, 1000); });
})();
`

// viewerScript binds the page to a viewer session. Carousels follow the
// server's event stream; the filter, the portfolio grid and the lightbox
// post actions and re-render from the returned gallery snapshot.
const viewerScript = `
(function () {
  var post = function (path, body) {
    return fetch(path, {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: body ? JSON.stringify(body) : null
    }).then(function (r) { return r.json(); });
  };

  var slide = function (img, i, cls) {
    var el = document.createElement('img');
    el.src = img.url;
    el.alt = img.alt_text;
    el.loading = 'lazy';
    el.dataset.index = String(i);
    if (cls) { el.className = cls; }
    return el;
  };

  fetch('/api/sessions', {method: 'POST'}).then(function (r) { return r.json(); }).then(function (snap) {
    var base = '/api/sessions/' + snap.id;
    var box = document.getElementById('lightbox');
    var stage = document.getElementById('lightbox-stage');
    var photo = document.getElementById('lightbox-image');
    var lightbox = {open: false, scale: 1};

    var showSlide = function (st) {
      var root = document.querySelector('[data-carousel="' + st.name + '"]');
      if (!root) { return; }
      root.querySelectorAll('[data-index]').forEach(function (el) {
        el.classList.toggle('active', Number(el.dataset.index) === st.index);
      });
    };

    var renderLightbox = function (gallery) {
      var lb = gallery.lightbox;
      lightbox = lb;
      box.hidden = !lb.open;
      if (!lb.open || !gallery.current) { return; }
      photo.src = gallery.current.url;
      photo.alt = gallery.current.alt_text;
      photo.style.transform = 'translate(' + lb.pan.x + 'px, ' + lb.pan.y + 'px) scale(' + lb.scale + ')';
      stage.style.cursor = lb.scale > 1 ? (lb.dragging ? 'grabbing' : 'grab') : 'zoom-in';
      document.getElementById('lightbox-counter').textContent = (lb.image_index + 1) + ' / ' + lb.length;
      document.getElementById('lightbox-caption').textContent = gallery.current.alt_text;
    };

    var renderGallery = function (gallery) {
      var grid = document.getElementById('gallery-grid');
      var track = document.getElementById('filmstrip-track');
      grid.replaceChildren.apply(grid, gallery.images.map(function (img, i) { return slide(img, i); }));
      track.replaceChildren.apply(track, gallery.images.map(function (img, i) {
        return slide(img, i, i === 0 ? 'slide active' : 'slide');
      }));
      document.querySelectorAll('[data-category]').forEach(function (btn) {
        btn.classList.toggle('active', btn.dataset.category === gallery.category);
      });
      renderLightbox(gallery);
    };

    var events = new EventSource(base + '/events');
    events.addEventListener('carousel', function (e) { showSlide(JSON.parse(e.data)); });
    events.addEventListener('end', function () { events.close(); });

    document.querySelectorAll('[data-carousel] [data-action]').forEach(function (btn) {
      var name = btn.closest('[data-carousel]').dataset.carousel;
      btn.addEventListener('click', function () { post(base + '/carousels/' + name + '/' + btn.dataset.action); });
    });

    document.querySelectorAll('[data-category]').forEach(function (btn) {
      btn.addEventListener('click', function () {
        post(base + '/category', {category: btn.dataset.category}).then(renderGallery);
      });
    });

    document.getElementById('gallery-grid').addEventListener('click', function (e) {
      var img = e.target.closest('img[data-index]');
      if (!img) { return; }
      post(base + '/lightbox/open', {index: Number(img.dataset.index)}).then(renderLightbox);
    });

    box.querySelectorAll('[data-lightbox]').forEach(function (btn) {
      btn.addEventListener('click', function () {
        post(base + '/lightbox/' + btn.dataset.lightbox).then(renderLightbox);
      });
    });
    box.addEventListener('click', function (e) {
      if (e.target === box) { post(base + '/lightbox/close').then(renderLightbox); }
    });

    var moving = false;
    var drag = function (phase, e) {
      return post(base + '/lightbox/drag', {phase: phase, x: e.clientX, y: e.clientY}).then(renderLightbox);
    };
    stage.addEventListener('pointerdown', function (e) {
      if (lightbox.scale <= 1) { return; }
      stage.setPointerCapture(e.pointerId);
      drag('start', e);
    });
    stage.addEventListener('pointermove', function (e) {
      if (!lightbox.dragging || moving) { return; }
      moving = true;
      drag('move', e).finally(function () { moving = false; });
    });
    var release = function (e) {
      if (!lightbox.dragging) { return; }
      drag('end', e);
    };
    stage.addEventListener('pointerup', release);
    stage.addEventListener('pointercancel', release);

    var lightboxKeys = ['Escape', 'ArrowLeft', 'ArrowRight', '+', '=', '-', '0'];
    document.addEventListener('keydown', function (e) {
      if (!lightbox.open || lightboxKeys.indexOf(e.key) < 0) { return; }
      e.preventDefault();
      post(base + '/lightbox/key', {key: e.key}).then(function (res) { renderLightbox(res.gallery); });
    });

    var form = document.getElementById('contact-form');
    form.addEventListener('submit', function (e) {
      e.preventDefault();
      var data = Object.fromEntries(new FormData(form));
      data.agree = data.agree === 'true';
      var btn = document.getElementById('contact-submit');
      var status = document.getElementById('contact-status');
      btn.disabled = true;
      fetch('/api/contact', {
        method: 'POST',
        headers: {'Content-Type': 'application/json', 'X-Session-ID': snap.id},
        body: JSON.stringify(data)
      }).then(function (r) { return r.json(); }).then(function (res) {
        status.textContent = res.message || res.error;
        if (res.message) { form.reset(); }
      }).catch(function () {
        status.textContent = 'Something went wrong. Please try again.';
      }).finally(function () { btn.disabled = false; });
    });

    document.getElementById('theme-toggle').addEventListener('click', function () {
      post('/api/theme/toggle').then(function (res) {
        document.getElementById('app').classList.toggle('dark', res.theme === 'dark');
      });
    });
  });
})();
`
